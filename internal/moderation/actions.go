package moderation

import (
	"context"
	"time"

	"moderation-service/internal/execution"
	"moderation-service/internal/gateway"
	"moderation-service/internal/repository/model"
)

// softBanPurgeDays is how much message history a soft ban deletes. Clearing
// recent messages is the entire point of a soft ban.
const softBanPurgeDays = 1

// ActionsFor builds the platform calls a case type performs, in order. Warn,
// unwarn, note and purge record a case without touching the platform. prior
// is the counterpart case being lifted, when there is one; unjail reads its
// role snapshot.
func ActionsFor(gw gateway.Gateway, req Request, prior *model.Case) []execution.Action {
	switch req.Type {
	case model.CaseTypeBan, model.CaseTypeTempBan, model.CaseTypeHackBan:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.BanMember(ctx, req.GuildId, req.TargetId, req.Reason, 0)
			},
		}

	case model.CaseTypeSoftBan:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.BanMember(ctx, req.GuildId, req.TargetId, req.Reason, softBanPurgeDays)
			},
			func(ctx context.Context) error {
				return gw.UnbanMember(ctx, req.GuildId, req.TargetId)
			},
		}

	case model.CaseTypeUnban:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.UnbanMember(ctx, req.GuildId, req.TargetId)
			},
		}

	case model.CaseTypeKick:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.KickMember(ctx, req.GuildId, req.TargetId, req.Reason)
			},
		}

	case model.CaseTypeTimeout:
		until := time.Now().UTC().Add(req.Duration)
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.TimeoutMember(ctx, req.GuildId, req.TargetId, &until)
			},
		}

	case model.CaseTypeUntimeout:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.TimeoutMember(ctx, req.GuildId, req.TargetId, nil)
			},
		}

	case model.CaseTypeJail:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.SetMemberRoles(ctx, req.GuildId, req.TargetId,
					[]string{req.Metadata[JailRoleMetadataKey]})
			},
		}

	case model.CaseTypeUnjail:
		return []execution.Action{
			func(ctx context.Context) error {
				return gw.SetMemberRoles(ctx, req.GuildId, req.TargetId, prior.TargetRoleIds)
			},
		}
	}

	return nil
}
