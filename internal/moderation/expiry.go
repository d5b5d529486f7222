package moderation

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"moderation-service/internal/execution"
	"moderation-service/internal/gateway"
	"moderation-service/internal/messaging/notifier"
	"moderation-service/internal/repository"
	"moderation-service/internal/repository/model"
	"moderation-service/internal/utils"
)

const sweepSchedule = "@every 1m"

// ExpiryWorker closes temporary cases whose time has run out. Tempbans are
// unbanned and jails have their role snapshot restored; timeouts lift on the
// platform by themselves, so only the case is closed.
type ExpiryWorker struct {
	log      *zap.SugaredLogger
	repo     repository.Repository
	gateway  gateway.Gateway
	executor *execution.Executor
	notifier notifier.Notifier

	cron *cron.Cron
}

func NewExpiryWorker(log *zap.SugaredLogger, repo repository.Repository, gateway gateway.Gateway,
	executor *execution.Executor, notifier notifier.Notifier) *ExpiryWorker {

	return &ExpiryWorker{
		log:      log,
		repo:     repo,
		gateway:  gateway,
		executor: executor,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (w *ExpiryWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(sweepSchedule, func() {
		w.Sweep(ctx)
	}); err != nil {
		return err
	}

	w.cron.Start()
	return nil
}

// Stop halts the schedule. The returned context is done once a running sweep
// has finished.
func (w *ExpiryWorker) Stop() context.Context {
	return w.cron.Stop()
}

// Sweep processes every case whose expiry has elapsed. A failed case is left
// active and picked up again on the next sweep.
func (w *ExpiryWorker) Sweep(ctx context.Context) {
	expired, err := w.repo.GetExpiredCases(ctx, time.Now().UTC())
	if err != nil {
		w.log.Errorw("failed to list expired cases", "error", err)
		return
	}

	for _, c := range expired {
		if err := w.expire(ctx, c); err != nil {
			w.log.Errorw("failed to expire case", "guildId", c.GuildId,
				"caseNumber", c.CaseNumber, "type", c.Type, "error", err)
		}
	}
}

func (w *ExpiryWorker) expire(ctx context.Context, c *model.Case) error {
	operationType, action := w.reversal(c)
	if action != nil {
		err := w.executor.Do(ctx, operationType, action)
		if err != nil && !execution.IsPermanent(err) {
			return err
		}
		if err != nil {
			// already unbanned or target gone: nothing left to reverse
			w.log.Warnw("platform rejected reversal, closing case anyway",
				"guildId", c.GuildId, "caseNumber", c.CaseNumber, "type", c.Type, "error", err)
		}
	}

	closed, err := w.repo.AmendCase(ctx, c.GuildId, c.CaseNumber,
		model.CaseAmendment{Active: utils.PointerOf(false)})
	if err != nil {
		return err
	}

	w.log.Infow("expired case", "guildId", c.GuildId, "caseNumber", c.CaseNumber, "type", c.Type)

	if err := w.notifier.CaseExpired(ctx, closed); err != nil {
		w.log.Errorw("failed to publish case expired event", "guildId", c.GuildId,
			"caseNumber", c.CaseNumber, "error", err)
	}

	return nil
}

// reversal is the platform call that undoes an expired case, tagged with the
// operation type of the equivalent lifting action so it shares that breaker.
func (w *ExpiryWorker) reversal(c *model.Case) (string, execution.Action) {
	switch c.Type {
	case model.CaseTypeTempBan:
		return string(model.CaseTypeUnban), func(ctx context.Context) error {
			return w.gateway.UnbanMember(ctx, c.GuildId, c.TargetId)
		}

	case model.CaseTypeJail:
		return string(model.CaseTypeUnjail), func(ctx context.Context) error {
			return w.gateway.SetMemberRoles(ctx, c.GuildId, c.TargetId, c.TargetRoleIds)
		}
	}

	return "", nil
}
