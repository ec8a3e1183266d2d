package standards

import (
	"github.com/pkg/errors"

	"github.com/koshi-quality/assessment/internal/wizard"
)

// validateEnvelope rejects payloads that would break the wizard's
// invariants: a missing results key, an empty catalog, or entries
// without usable ids/names. A requirement may legitimately carry zero
// questions.
func validateEnvelope(env *requirementsEnvelope) error {
	if env.Results == nil {
		return errors.Wrap(wizard.ErrLoad, "malformed payload: missing results")
	}
	reqs := *env.Results
	if len(reqs) == 0 {
		return errors.Wrap(wizard.ErrLoad, "empty requirement list")
	}
	seen := make(map[int64]struct{}, len(reqs))
	for i, r := range reqs {
		if r.ID == 0 {
			return errors.Wrapf(wizard.ErrLoad, "malformed payload: requirement %d has no id", i)
		}
		if r.Name == "" {
			return errors.Wrapf(wizard.ErrLoad, "malformed payload: requirement %d has no name", r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return errors.Wrapf(wizard.ErrLoad, "malformed payload: duplicate requirement id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
		for j, q := range r.Questions {
			if q.ID == 0 {
				return errors.Wrapf(wizard.ErrLoad, "malformed payload: requirement %d question %d has no id", r.ID, j)
			}
		}
	}
	return nil
}
