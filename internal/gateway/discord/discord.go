package discord

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"moderation-service/internal/execution"
	"moderation-service/internal/gateway"
)

type discordGateway struct {
	gateway.Gateway
	session *discordgo.Session
}

// NewGateway creates a REST-only Discord client. The websocket is never
// opened, all reads and writes go straight to the HTTP API.
func NewGateway(token string) (gateway.Gateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	// Rate limit waits are the caller's retry policy, not the client's.
	session.ShouldRetryOnRateLimit = false

	return &discordGateway{session: session}, nil
}

func (g *discordGateway) GuildName(ctx context.Context, guildId string) (string, error) {
	guild, err := g.session.Guild(guildId, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError(err)
	}

	return guild.Name, nil
}

func (g *discordGateway) GuildOwnerId(ctx context.Context, guildId string) (string, error) {
	guild, err := g.session.Guild(guildId, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError(err)
	}

	return guild.OwnerID, nil
}

func (g *discordGateway) MemberRoleIds(ctx context.Context, guildId string, userId string) ([]string, error) {
	member, err := g.session.GuildMember(guildId, userId, discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateError(err)
	}

	return member.Roles, nil
}

func (g *discordGateway) BanMember(ctx context.Context, guildId string, userId string, reason string, deleteDays int) error {
	return translateError(g.session.GuildBanCreateWithReason(guildId, userId, reason, deleteDays, discordgo.WithContext(ctx)))
}

func (g *discordGateway) UnbanMember(ctx context.Context, guildId string, userId string) error {
	return translateError(g.session.GuildBanDelete(guildId, userId, discordgo.WithContext(ctx)))
}

func (g *discordGateway) KickMember(ctx context.Context, guildId string, userId string, reason string) error {
	return translateError(g.session.GuildMemberDeleteWithReason(guildId, userId, reason, discordgo.WithContext(ctx)))
}

func (g *discordGateway) TimeoutMember(ctx context.Context, guildId string, userId string, until *time.Time) error {
	return translateError(g.session.GuildMemberTimeout(guildId, userId, until, discordgo.WithContext(ctx)))
}

func (g *discordGateway) SetMemberRoles(ctx context.Context, guildId string, userId string, roleIds []string) error {
	_, err := g.session.GuildMemberEdit(guildId, userId, &discordgo.GuildMemberParams{Roles: &roleIds}, discordgo.WithContext(ctx))
	return translateError(err)
}

func (g *discordGateway) SendDirectMessage(ctx context.Context, userId string, content string) error {
	channel, err := g.session.UserChannelCreate(userId, discordgo.WithContext(ctx))
	if err != nil {
		return translateError(err)
	}

	_, err = g.session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx))
	return translateError(err)
}

// translateError classifies platform responses for the retry policy.
// Client errors will not get better on retry, rate limits carry the wait
// the platform advertised, everything else stays retryable.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var rateLimit *discordgo.RateLimitError
	if errors.As(err, &rateLimit) {
		return execution.RateLimited(err, rateLimit.RetryAfter)
	}

	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		code := rest.Response.StatusCode
		if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
			return execution.Permanent(err)
		}
	}

	return err
}
