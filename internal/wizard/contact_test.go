package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactValid(t *testing.T) {
	c := Contact{Name: "Asha Rai", Email: "asha@example.com", Phone: "+977 980-000-0001"}
	require.NoError(t, c.Validate())
}

func TestContactAllFieldsInvalid(t *testing.T) {
	err := Contact{Name: "  ", Email: "not-an-email", Phone: "12345"}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name:")
	assert.Contains(t, err.Error(), "email:")
	assert.Contains(t, err.Error(), "phone:")
}

func TestContactSingleFieldFailure(t *testing.T) {
	err := Contact{Name: "Asha", Email: "asha@example.com", Phone: "980"}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "phone:")
	assert.NotContains(t, err.Error(), "email:")
	assert.NotContains(t, err.Error(), "name:")
}

func TestContactEmailShapes(t *testing.T) {
	bad := []string{"", "plain", "a@b", "a b@c.com", "@c.com", "a@", "a@@c.com"}
	for _, e := range bad {
		err := Contact{Name: "A", Email: e, Phone: "9800000000"}.Validate()
		assert.ErrorIs(t, err, ErrValidation, "email %q should fail", e)
	}
	good := []string{"a@b.co", "first.last@sub.example.com", "x+tag@example.org"}
	for _, e := range good {
		assert.NoError(t, Contact{Name: "A", Email: e, Phone: "9800000000"}.Validate(), "email %q should pass", e)
	}
}

func TestContactPhoneCountsDigitsOnly(t *testing.T) {
	require.NoError(t, Contact{Name: "A", Email: "a@b.com", Phone: "(980) 123-4567 x89"}.Validate())
	require.Error(t, Contact{Name: "A", Email: "a@b.com", Phone: "++--(12) 345"}.Validate())
}
