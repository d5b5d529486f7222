package gateway

import (
	"context"
	"time"
)

// Gateway is the chat platform surface the service reads from and acts
// through. Implementations translate platform failures into the retry
// classifications defined by the execution package.
type Gateway interface {
	GuildName(ctx context.Context, guildId string) (string, error)
	GuildOwnerId(ctx context.Context, guildId string) (string, error)
	MemberRoleIds(ctx context.Context, guildId string, userId string) ([]string, error)

	BanMember(ctx context.Context, guildId string, userId string, reason string, deleteDays int) error
	UnbanMember(ctx context.Context, guildId string, userId string) error
	KickMember(ctx context.Context, guildId string, userId string, reason string) error
	// TimeoutMember mutes the member until the given time. A nil time lifts
	// the mute.
	TimeoutMember(ctx context.Context, guildId string, userId string, until *time.Time) error
	SetMemberRoles(ctx context.Context, guildId string, userId string, roleIds []string) error

	SendDirectMessage(ctx context.Context, userId string, content string) error
}
