package wizard

import "context"

// Store persists wizard sessions. Implementations must return copies that
// are safe for the caller to mutate before saving back.
type Store interface {
	PutSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	SaveSession(ctx context.Context, s *Session) error
}
