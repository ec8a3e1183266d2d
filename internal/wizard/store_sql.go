package wizard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists sessions as JSON blobs, one row per session. Works
// against sqlite and postgres through database/sql.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutSession(ctx context.Context, sess *Session) error {
	buf, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO wizard_sessions (id, state_json, created_at, updated_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		sess.ID, string(buf), now, now)
	return err
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM wizard_sessions WHERE id=$1`, id)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(blob), &sess); err != nil {
		return nil, err
	}
	if sess.Applicability == nil {
		sess.Applicability = map[int64]Applicability{}
	}
	if sess.Answers == nil {
		sess.Answers = map[int64]bool{}
	}
	return &sess, nil
}

func (s *SQLStore) SaveSession(ctx context.Context, sess *Session) error {
	buf, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE wizard_sessions SET state_json=$1, updated_at=$2 WHERE id=$3`,
		string(buf), time.Now().Unix(), sess.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
