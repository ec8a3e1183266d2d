package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koshi-quality/assessment/internal/db"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	return NewSQLStore(dbh)
}

func TestSQLStoreRoundTrip(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	s := mustSession(t, twoStepCatalog())
	require.NoError(t, s.SetApplicability(0, ApplicabilityYes))
	require.NoError(t, s.AnswerQuestion(11, true))
	require.NoError(t, store.PutSession(ctx, s))

	got, err := store.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.State, got.State)
	assert.Equal(t, s.StepIndex, got.StepIndex)
	assert.Equal(t, s.QuestionIndex, got.QuestionIndex)
	assert.Equal(t, s.Applicability, got.Applicability)
	assert.Equal(t, s.Answers, got.Answers)
	require.Len(t, got.Requirements, 2)
	assert.Equal(t, "Food Safety", got.Requirements[0].Name)
}

func TestSQLStoreSave(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	s := mustSession(t, twoStepCatalog())
	require.NoError(t, store.PutSession(ctx, s))

	require.NoError(t, s.SetApplicability(0, ApplicabilityNo))
	require.NoError(t, store.SaveSession(ctx, s))

	got, err := store.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StepIndex)
	assert.Equal(t, ApplicabilityNo, got.Applicability[1])
}

func TestSQLStoreNotFound(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	_, err := store.GetSession(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	s := mustSession(t, twoStepCatalog())
	require.ErrorIs(t, store.SaveSession(ctx, s), ErrNotFound)
}
