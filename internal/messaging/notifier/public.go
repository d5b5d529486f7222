package notifier

import (
	"context"

	"moderation-service/internal/repository/model"
)

// Notifier publishes moderation events for downstream consumers, e.g.
// audit log channels and appeal tooling. Delivery is fire and forget,
// callers log failures and move on.
type Notifier interface {
	CaseCreated(ctx context.Context, c *model.Case) error
	CaseUpdated(ctx context.Context, c *model.Case) error
	CaseExpired(ctx context.Context, c *model.Case) error
	PermissionsChanged(ctx context.Context, guildId string) error
}
