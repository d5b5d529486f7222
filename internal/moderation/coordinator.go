package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"moderation-service/internal/execution"
	"moderation-service/internal/gateway"
	"moderation-service/internal/messaging/notifier"
	"moderation-service/internal/repository"
	"moderation-service/internal/repository/model"
	"moderation-service/internal/utils"
)

// JailRoleMetadataKey is the request metadata key naming the role a jailed
// member is confined to.
const JailRoleMetadataKey = "jail_role_id"

// workflowTimeout bounds the detached side-effect stretch of one action,
// retries and backoff waits included.
const workflowTimeout = 2 * time.Minute

var (
	InvalidTypeError        = errors.New("unknown case type")
	MissingGuildError       = errors.New("guild id is required")
	MissingTargetError      = errors.New("target id is required")
	MissingModeratorError   = errors.New("moderator id is required")
	MissingJailRoleError    = errors.New("jail requires a jail role id")
	ReasonTooLongError      = fmt.Errorf("reason exceeds %d characters", model.MaxReasonLength)
	DurationRequiredError   = errors.New("this case type requires a duration")
	DurationNotAllowedError = errors.New("this case type does not take a duration")
	NoActiveCaseError       = errors.New("no active case to lift")
)

// UnauditedActionError reports that the action was carried out but its case
// could not be written. The target has been actioned with no audit trail, so
// callers must not report success.
type UnauditedActionError struct {
	Err error
}

func (e *UnauditedActionError) Error() string {
	return fmt.Sprintf("action performed but not recorded: %s", e.Err)
}

func (e *UnauditedActionError) Unwrap() error {
	return e.Err
}

// Request describes one moderation action against a target.
type Request struct {
	GuildId     string
	Type        model.CaseType
	TargetId    string
	ModeratorId string
	Reason      string
	// Duration is required for TEMPBAN and TIMEOUT, optional for JAIL and
	// rejected for everything else.
	Duration time.Duration
	// Silent skips notifying the target.
	Silent   bool
	Metadata map[string]string

	// Actions overrides the platform calls derived from Type. Leave nil for
	// the standard behaviour.
	Actions []execution.Action
}

// Coordinator runs moderation actions end to end: validation, target
// notification, platform calls and the audit case.
type Coordinator struct {
	log      *zap.SugaredLogger
	repo     repository.Repository
	gateway  gateway.Gateway
	executor *execution.Executor
	notifier notifier.Notifier
}

func NewCoordinator(log *zap.SugaredLogger, repo repository.Repository, gateway gateway.Gateway,
	executor *execution.Executor, notifier notifier.Notifier) *Coordinator {

	return &Coordinator{
		log:      log,
		repo:     repo,
		gateway:  gateway,
		executor: executor,
		notifier: notifier,
	}
}

// Execute validates the request, notifies the target, performs the platform
// actions and writes the case. Removal actions notify before acting because
// the target cannot be messaged afterwards; everything else notifies after
// the case exists so the notice can carry its number.
func (c *Coordinator) Execute(ctx context.Context, req Request) (*model.Case, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	prior, err := c.counterpart(ctx, req)
	if err != nil {
		return nil, err
	}

	// Snapshot before acting: jail replaces the roles and unjail needs the
	// originals back. Hackban targets are not members, nothing to snapshot.
	var roleIds []string
	if req.Type != model.CaseTypeHackBan {
		roleIds, err = c.gateway.MemberRoleIds(ctx, req.GuildId, req.TargetId)
		if err != nil {
			// Releasing a jail restores this snapshot, so jailing on a
			// missing one would strip the member's roles on release.
			if req.Type == model.CaseTypeJail {
				return nil, fmt.Errorf("failed to snapshot target roles: %w", err)
			}
			c.log.Warnw("failed to snapshot target roles", "guildId", req.GuildId,
				"targetId", req.TargetId, "error", err)
			roleIds = nil
		}
	}

	// A dropped caller cancels the request context; an action that fires must
	// still run to completion and be recorded, so from the first side effect
	// on the workflow carries a detached context with its own deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), workflowTimeout)
	defer cancel()

	if req.Type.Removal() && !req.Silent {
		c.notify(ctx, req, nil)
	}

	actions := req.Actions
	if actions == nil {
		actions = ActionsFor(c.gateway, req, prior)
	}
	for _, action := range actions {
		if err := c.executor.Do(ctx, string(req.Type), action); err != nil {
			return nil, fmt.Errorf("failed to execute %s: %w", req.Type, err)
		}
	}

	if prior != nil {
		closed, err := c.repo.AmendCase(ctx, prior.GuildId, prior.CaseNumber,
			model.CaseAmendment{Active: utils.PointerOf(false)})
		if err != nil {
			return nil, &UnauditedActionError{Err: err}
		}
		c.publishUpdated(ctx, closed)
	}

	newCase := &model.Case{
		GuildId:       req.GuildId,
		Type:          req.Type,
		TargetId:      req.TargetId,
		ModeratorId:   req.ModeratorId,
		Reason:        req.Reason,
		Active:        true,
		TargetRoleIds: roleIds,
		Metadata:      req.Metadata,
	}
	if req.Type.Temporary() && req.Duration > 0 {
		expiresAt := time.Now().UTC().Add(req.Duration).Truncate(time.Millisecond)
		newCase.ExpiresAt = &expiresAt
	}

	created, err := c.repo.CreateCase(ctx, newCase)
	if err != nil {
		if len(actions) > 0 || prior != nil {
			return nil, &UnauditedActionError{Err: err}
		}
		return nil, err
	}

	if !req.Type.Removal() && !req.Silent {
		c.notify(ctx, req, created)
	}

	if err := c.notifier.CaseCreated(ctx, created); err != nil {
		c.log.Errorw("failed to publish case created event", "guildId", created.GuildId,
			"caseNumber", created.CaseNumber, "error", err)
	}

	return created, nil
}

func (c *Coordinator) validate(req Request) error {
	if req.GuildId == "" {
		return MissingGuildError
	}
	if req.TargetId == "" {
		return MissingTargetError
	}
	if req.ModeratorId == "" {
		return MissingModeratorError
	}
	if !req.Type.Valid() {
		return InvalidTypeError
	}
	if len(req.Reason) > model.MaxReasonLength {
		return ReasonTooLongError
	}
	if req.Type == model.CaseTypeJail && req.Metadata[JailRoleMetadataKey] == "" {
		return MissingJailRoleError
	}

	switch {
	case (req.Type == model.CaseTypeTempBan || req.Type == model.CaseTypeTimeout) && req.Duration <= 0:
		return DurationRequiredError
	case !req.Type.Temporary() && req.Duration != 0:
		return DurationNotAllowedError
	}

	return nil
}

// banFamily are the types that leave a standing platform ban behind.
var banFamily = []model.CaseType{model.CaseTypeBan, model.CaseTypeTempBan, model.CaseTypeHackBan}

// counterpart finds the active case a lifting action closes. Unban, unjail
// and unwarn are rejected when there is nothing to lift; untimeout is not,
// because a platform mute can exist without a case.
func (c *Coordinator) counterpart(ctx context.Context, req Request) (*model.Case, error) {
	switch req.Type {
	case model.CaseTypeUnban:
		for _, banType := range banFamily {
			prior, err := c.activeCase(ctx, req, banType)
			if err != nil {
				return nil, err
			}
			if prior != nil {
				return prior, nil
			}
		}
		return nil, NoActiveCaseError

	case model.CaseTypeUnjail:
		prior, err := c.activeCase(ctx, req, model.CaseTypeJail)
		if err != nil {
			return nil, err
		}
		if prior == nil {
			return nil, NoActiveCaseError
		}
		return prior, nil

	case model.CaseTypeUnwarn:
		prior, err := c.activeCase(ctx, req, model.CaseTypeWarn)
		if err != nil {
			return nil, err
		}
		if prior == nil {
			return nil, NoActiveCaseError
		}
		return prior, nil

	case model.CaseTypeUntimeout:
		return c.activeCase(ctx, req, model.CaseTypeTimeout)
	}

	return nil, nil
}

func (c *Coordinator) activeCase(ctx context.Context, req Request, caseType model.CaseType) (*model.Case, error) {
	prior, err := c.repo.GetActiveCase(ctx, req.GuildId, req.TargetId, caseType)
	if err != nil {
		if errors.Is(err, repository.CaseNotFoundError) {
			return nil, nil
		}
		return nil, err
	}
	return prior, nil
}

var noticeVerbs = map[model.CaseType]string{
	model.CaseTypeBan:       "You have been banned from",
	model.CaseTypeTempBan:   "You have been temporarily banned from",
	model.CaseTypeHackBan:   "You have been banned from",
	model.CaseTypeSoftBan:   "You have been soft-banned (you may rejoin) from",
	model.CaseTypeUnban:     "You have been unbanned from",
	model.CaseTypeKick:      "You have been kicked from",
	model.CaseTypeWarn:      "You have been warned in",
	model.CaseTypeUnwarn:    "A warning against you was removed in",
	model.CaseTypeTimeout:   "You have been timed out in",
	model.CaseTypeUntimeout: "Your timeout has been lifted in",
	model.CaseTypeJail:      "You have been jailed in",
	model.CaseTypeUnjail:    "You have been released from jail in",
	model.CaseTypePurge:     "Your recent messages were removed in",
	// notes are staff-internal, the target is never notified
}

// notify sends the target a direct message. Delivery is best effort: removed
// or closed-DM targets are unreachable and that must never fail the action.
func (c *Coordinator) notify(ctx context.Context, req Request, created *model.Case) {
	verb, ok := noticeVerbs[req.Type]
	if !ok {
		return
	}

	guildName, err := c.gateway.GuildName(ctx, req.GuildId)
	if err != nil || guildName == "" {
		guildName = "the server"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s.", verb, guildName)
	if req.Duration > 0 {
		fmt.Fprintf(&b, "\nDuration: %s", req.Duration)
	}
	if req.Reason != "" {
		fmt.Fprintf(&b, "\nReason: %s", req.Reason)
	}
	if created != nil {
		fmt.Fprintf(&b, "\nCase #%d", created.CaseNumber)
	}

	if err := c.gateway.SendDirectMessage(ctx, req.TargetId, b.String()); err != nil {
		c.log.Warnw("failed to notify target", "guildId", req.GuildId,
			"targetId", req.TargetId, "type", req.Type, "error", err)
	}
}

func (c *Coordinator) publishUpdated(ctx context.Context, amended *model.Case) {
	if err := c.notifier.CaseUpdated(ctx, amended); err != nil {
		c.log.Errorw("failed to publish case updated event", "guildId", amended.GuildId,
			"caseNumber", amended.CaseNumber, "error", err)
	}
}
