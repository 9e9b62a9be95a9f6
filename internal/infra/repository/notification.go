package repository

import (
	"context"
	"time"

	"library-api/internal/infra"
	"library-api/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	jsoniter "github.com/json-iterator/go"
)

const notificationJobsTable = "notification_jobs"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(pool db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

// CreateJob records an outbox row for a notification event. The payload is
// an arbitrary JSON-serializable document; delivery happens outside the
// reservation transaction.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload any, runAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal notification payload", err)
	}

	// id is BIGSERIAL; the database assigns it.
	query, _, err := pgDialect.
		Insert(notificationJobsTable).
		Rows(goqu.Record{
			"kind":    kind,
			"topic":   topic,
			"payload": string(body),
			"run_at":  runAt,
		}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job insert", err)
	}

	if _, err := r.db.Exec(ctx, query); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
