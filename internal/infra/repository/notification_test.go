//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"library-api/internal/infra/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqlRecorder satisfies db.DBTX and captures the statements a repository
// executes without a live connection.
type sqlRecorder struct {
	executed []string
}

func (r *sqlRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.executed = append(r.executed, sql)
	return pgconn.CommandTag{}, nil
}

func (r *sqlRecorder) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (r *sqlRecorder) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func TestCreateJobLetsDatabaseAssignID(t *testing.T) {
	t.Parallel()

	recorder := &sqlRecorder{}
	repo := repository.NewNotificationRepository(recorder)

	payload := map[string]any{"event": "created", "book_title": "Dune"}
	err := repo.CreateJob(context.Background(), "email", "reservation_created", payload, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, recorder.executed, 1)

	// id is BIGSERIAL; inserting a value for it would make every outbox
	// write fail with a type error.
	sql := recorder.executed[0]
	assert.NotContains(t, sql, `"id"`)
	assert.Contains(t, sql, `INSERT INTO "notification_jobs"`)
	assert.Contains(t, sql, `"kind"`)
	assert.Contains(t, sql, `"topic"`)
	assert.Contains(t, sql, `"payload"`)
	assert.Contains(t, sql, `"run_at"`)
	assert.Contains(t, sql, "reservation_created")
	assert.Contains(t, sql, "Dune")
}

func TestCreateJobRejectsUnserializablePayload(t *testing.T) {
	t.Parallel()

	recorder := &sqlRecorder{}
	repo := repository.NewNotificationRepository(recorder)

	err := repo.CreateJob(context.Background(), "email", "reservation_created", func() {}, time.Now())
	require.Error(t, err)
	assert.Empty(t, recorder.executed)
}
