package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MinLevel and MaxLevel bound a guild's permission hierarchy.
	MinLevel int32 = 0
	MaxLevel int32 = 10

	// MaxReasonLength is the longest reason a case may carry.
	MaxReasonLength = 2000
)

// PermissionLevel is one step in a guild's moderation hierarchy. A member
// holding level n can do everything members below n can.
type PermissionLevel struct {
	GuildId     string `bson:"guildId" json:"guildId"`
	Level       int32  `bson:"level" json:"level"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// DefaultLevels is the hierarchy installed by the init operation. Levels are
// spaced so guilds can slot custom levels between the defaults.
func DefaultLevels(guildId string) []*PermissionLevel {
	return []*PermissionLevel{
		{GuildId: guildId, Level: 0, Name: "Member", Description: "Everyone in the guild"},
		{GuildId: guildId, Level: 2, Name: "Trusted", Description: "Trusted members"},
		{GuildId: guildId, Level: 4, Name: "Moderator", Description: "Can warn, timeout and jail members"},
		{GuildId: guildId, Level: 6, Name: "Senior Moderator", Description: "Can kick and ban members"},
		{GuildId: guildId, Level: 8, Name: "Administrator", Description: "Can manage the moderation configuration"},
		{GuildId: guildId, Level: 10, Name: "Owner", Description: "Full control"},
	}
}

// RoleAssignment maps a platform role to a permission level. A role has at
// most one assignment per guild; many roles may share a level.
type RoleAssignment struct {
	GuildId string `bson:"guildId" json:"guildId"`
	RoleId  string `bson:"roleId" json:"roleId"`
	Level   int32  `bson:"level" json:"level"`
}

// CommandPermission is the level required to run a command. Command is a
// dotted path ("config.levels"); lookups fall back to the parent path.
type CommandPermission struct {
	GuildId       string `bson:"guildId" json:"guildId"`
	Command       string `bson:"command" json:"command"`
	RequiredLevel int32  `bson:"requiredLevel" json:"requiredLevel"`
}

// Guild carries the per-guild case counter. CaseSequence is only ever
// mutated inside the case-creation transaction.
type Guild struct {
	Id           string `bson:"_id" json:"id"`
	CaseSequence int64  `bson:"caseSequence" json:"caseSequence"`
}

// CaseType identifies the moderation action a case records.
type CaseType string

const (
	CaseTypeBan       CaseType = "BAN"
	CaseTypeTempBan   CaseType = "TEMPBAN"
	CaseTypeHackBan   CaseType = "HACKBAN"
	CaseTypeSoftBan   CaseType = "SOFTBAN"
	CaseTypeUnban     CaseType = "UNBAN"
	CaseTypeKick      CaseType = "KICK"
	CaseTypeWarn      CaseType = "WARN"
	CaseTypeUnwarn    CaseType = "UNWARN"
	CaseTypeTimeout   CaseType = "TIMEOUT"
	CaseTypeUntimeout CaseType = "UNTIMEOUT"
	CaseTypeJail      CaseType = "JAIL"
	CaseTypeUnjail    CaseType = "UNJAIL"
	CaseTypeNote      CaseType = "NOTE"
	CaseTypePurge     CaseType = "PURGE"
)

// CaseTypes lists every valid case type.
var CaseTypes = []CaseType{
	CaseTypeBan, CaseTypeTempBan, CaseTypeHackBan, CaseTypeSoftBan,
	CaseTypeUnban, CaseTypeKick, CaseTypeWarn, CaseTypeUnwarn,
	CaseTypeTimeout, CaseTypeUntimeout, CaseTypeJail, CaseTypeUnjail,
	CaseTypeNote, CaseTypePurge,
}

func (t CaseType) Valid() bool {
	for _, known := range CaseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Removal reports whether the action ends the target's guild membership.
// Removal actions notify the target before executing, because a removed
// member can no longer be messaged.
func (t CaseType) Removal() bool {
	switch t {
	case CaseTypeBan, CaseTypeTempBan, CaseTypeHackBan, CaseTypeSoftBan, CaseTypeKick:
		return true
	}
	return false
}

// Temporary reports whether the action may carry an expiry.
func (t CaseType) Temporary() bool {
	switch t {
	case CaseTypeTempBan, CaseTypeTimeout, CaseTypeJail:
		return true
	}
	return false
}

// Command returns the command identifier checked against the permission
// hierarchy when a moderator issues this action.
func (t CaseType) Command() string {
	switch t {
	case CaseTypeTempBan, CaseTypeHackBan:
		// variants of ban share its permission entry
		return "ban"
	case CaseTypeUnwarn:
		return "warn.remove"
	}
	return strings.ToLower(string(t))
}

// Case is the audit record of one moderation action. GuildId, CaseNumber,
// Type, TargetId and ModeratorId are immutable once written; only Reason and
// Active may be amended. Cases are never deleted; closing one sets
// Active=false.
type Case struct {
	Id             uuid.UUID         `bson:"_id" json:"id"`
	GuildId        string            `bson:"guildId" json:"guildId"`
	CaseNumber     int64             `bson:"caseNumber" json:"caseNumber"`
	Type           CaseType          `bson:"type" json:"type"`
	TargetId       string            `bson:"targetId" json:"targetId"`
	ModeratorId    string            `bson:"moderatorId" json:"moderatorId"`
	Reason         string            `bson:"reason" json:"reason"`
	Active         bool              `bson:"active" json:"active"`
	CreatedAt      time.Time         `bson:"createdAt" json:"createdAt"`
	ExpiresAt      *time.Time        `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	TargetRoleIds  []string          `bson:"targetRoleIds" json:"targetRoleIds"`
	Metadata       map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	AuditMessageId *string           `bson:"auditMessageId,omitempty" json:"auditMessageId,omitempty"`
}

// Expired reports whether a temporary case has naturally run out at now.
func (c *Case) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// CaseAmendment is the set of fields an admin may change after a case is
// written. Everything else on a case is immutable.
type CaseAmendment struct {
	Reason *string `json:"reason,omitempty"`
	Active *bool   `json:"active,omitempty"`
}
