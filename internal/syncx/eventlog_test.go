package syncx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koshi-quality/assessment/internal/db"
)

func TestEventLogAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })

	repo := NewEventRepo(dbh)
	require.NoError(t, repo.Append(ctx, Event{Type: EventSubmissionFailed, Key: "s1", DataJSON: `{"error":"status 500"}`}))
	require.NoError(t, repo.Append(ctx, Event{Type: EventAssessmentSubmitted, Key: "s1", DataJSON: `{"earned_points":10}`}))

	events, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventAssessmentSubmitted, events[0].Type, "newest first")
	assert.Equal(t, "s1", events[0].Key)
	assert.Greater(t, events[0].Offset, events[1].Offset)
}
