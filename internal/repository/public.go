package repository

import (
	"context"
	"time"

	"moderation-service/internal/repository/model"
)

type Repository interface {
	// InitGuildLevels installs the default permission hierarchy for a guild.
	// It is idempotent: if the guild already has levels it does nothing and
	// returns false.
	InitGuildLevels(ctx context.Context, guildId string) (bool, error)
	GetLevels(ctx context.Context, guildId string) ([]*model.PermissionLevel, error)
	GetLevel(ctx context.Context, guildId string, level int32) (*model.PermissionLevel, error)
	SetLevel(ctx context.Context, level *model.PermissionLevel) error
	DeleteLevel(ctx context.Context, guildId string, level int32) error

	GetRoleAssignments(ctx context.Context, guildId string) ([]*model.RoleAssignment, error)
	SetRoleAssignment(ctx context.Context, assignment *model.RoleAssignment) error
	RemoveRoleAssignment(ctx context.Context, guildId string, roleId string) error

	GetCommandPermissions(ctx context.Context, guildId string) ([]*model.CommandPermission, error)
	SetCommandPermission(ctx context.Context, permission *model.CommandPermission) error
	RemoveCommandPermission(ctx context.Context, guildId string, command string) error

	// CreateCase persists a new case and assigns it the next case number for
	// its guild. The returned case carries the assigned id and number.
	CreateCase(ctx context.Context, c *model.Case) (*model.Case, error)
	GetCase(ctx context.Context, guildId string, caseNumber int64) (*model.Case, error)
	GetCasesByTarget(ctx context.Context, guildId string, targetId string) ([]*model.Case, error)
	GetCasesByModerator(ctx context.Context, guildId string, moderatorId string) ([]*model.Case, error)
	SearchCases(ctx context.Context, guildId string, filter CaseFilter) ([]*model.Case, error)
	GetActiveCase(ctx context.Context, guildId string, targetId string, caseType model.CaseType) (*model.Case, error)
	GetExpiredCases(ctx context.Context, now time.Time) ([]*model.Case, error)
	// AmendCase applies a partial update to a case's mutable fields. An empty
	// amendment is a no-op and returns the case as stored.
	AmendCase(ctx context.Context, guildId string, caseNumber int64, amendment model.CaseAmendment) (*model.Case, error)
	SetCaseAuditMessage(ctx context.Context, guildId string, caseNumber int64, messageId string) error
}

// CaseFilter narrows a case search. Nil fields match everything.
type CaseFilter struct {
	Type     *model.CaseType
	TargetId *string
	Active   *bool
}
