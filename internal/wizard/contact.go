package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the contact form rules: non-empty name, RFC-shaped
// email, and a phone number carrying at least 10 digits. All failing
// fields are reported together under ErrValidation.
func (c Contact) Validate() error {
	var fields []error
	if strings.TrimSpace(c.Name) == "" {
		fields = append(fields, fmt.Errorf("name: is required"))
	}
	if !emailRx.MatchString(strings.TrimSpace(c.Email)) {
		fields = append(fields, fmt.Errorf("email: invalid email address"))
	}
	if digitCount(c.Phone) < 10 {
		fields = append(fields, fmt.Errorf("phone: must contain at least 10 digits"))
	}
	if len(fields) == 0 {
		return nil
	}
	return multierror.Append(ErrValidation, fields...)
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
