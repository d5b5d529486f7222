package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCaseType_Valid(t *testing.T) {
	for _, caseType := range CaseTypes {
		assert.Truef(t, caseType.Valid(), "%s should be valid", caseType)
	}

	assert.False(t, CaseType("").Valid())
	assert.False(t, CaseType("ban").Valid())
	assert.False(t, CaseType("DEPORT").Valid())
}

func TestCaseType_Removal(t *testing.T) {
	tests := []struct {
		caseType CaseType
		want     bool
	}{
		{caseType: CaseTypeBan, want: true},
		{caseType: CaseTypeTempBan, want: true},
		{caseType: CaseTypeHackBan, want: true},
		{caseType: CaseTypeSoftBan, want: true},
		{caseType: CaseTypeKick, want: true},
		{caseType: CaseTypeUnban, want: false},
		{caseType: CaseTypeWarn, want: false},
		{caseType: CaseTypeTimeout, want: false},
		{caseType: CaseTypeJail, want: false},
		{caseType: CaseTypeNote, want: false},
		{caseType: CaseTypePurge, want: false},
	}

	for _, test := range tests {
		t.Run(string(test.caseType), func(t *testing.T) {
			assert.Equal(t, test.want, test.caseType.Removal())
		})
	}
}

func TestCaseType_Temporary(t *testing.T) {
	tests := []struct {
		caseType CaseType
		want     bool
	}{
		{caseType: CaseTypeTempBan, want: true},
		{caseType: CaseTypeTimeout, want: true},
		{caseType: CaseTypeJail, want: true},
		{caseType: CaseTypeBan, want: false},
		{caseType: CaseTypeKick, want: false},
		{caseType: CaseTypeWarn, want: false},
	}

	for _, test := range tests {
		t.Run(string(test.caseType), func(t *testing.T) {
			assert.Equal(t, test.want, test.caseType.Temporary())
		})
	}
}

func TestCaseType_Command(t *testing.T) {
	tests := []struct {
		caseType CaseType
		want     string
	}{
		{caseType: CaseTypeBan, want: "ban"},
		{caseType: CaseTypeTempBan, want: "ban"},
		{caseType: CaseTypeHackBan, want: "ban"},
		{caseType: CaseTypeSoftBan, want: "softban"},
		{caseType: CaseTypeUnban, want: "unban"},
		{caseType: CaseTypeKick, want: "kick"},
		{caseType: CaseTypeWarn, want: "warn"},
		{caseType: CaseTypeUnwarn, want: "warn.remove"},
		{caseType: CaseTypeTimeout, want: "timeout"},
		{caseType: CaseTypeUntimeout, want: "untimeout"},
		{caseType: CaseTypeJail, want: "jail"},
		{caseType: CaseTypeUnjail, want: "unjail"},
		{caseType: CaseTypeNote, want: "note"},
		{caseType: CaseTypePurge, want: "purge"},
	}

	for _, test := range tests {
		t.Run(string(test.caseType), func(t *testing.T) {
			assert.Equal(t, test.want, test.caseType.Command())
		})
	}
}

func TestDefaultLevels(t *testing.T) {
	levels := DefaultLevels("guild-1")

	assert.Len(t, levels, 6)

	var last int32 = -1
	for _, level := range levels {
		assert.Equal(t, "guild-1", level.GuildId)
		assert.GreaterOrEqual(t, level.Level, MinLevel)
		assert.LessOrEqual(t, level.Level, MaxLevel)
		assert.Greater(t, level.Level, last, "levels should ascend")
		assert.NotEmpty(t, level.Name)
		last = level.Level
	}

	assert.Equal(t, int32(0), levels[0].Level)
	assert.Equal(t, "Member", levels[0].Name)
	assert.Equal(t, int32(10), levels[len(levels)-1].Level)
	assert.Equal(t, "Owner", levels[len(levels)-1].Name)
}

func TestCase_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{name: "no expiry", expiresAt: nil, want: false},
		{name: "expires in the future", expiresAt: &future, want: false},
		{name: "expired in the past", expiresAt: &past, want: true},
		{name: "expires exactly now", expiresAt: &now, want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := &Case{ExpiresAt: test.expiresAt}
			assert.Equal(t, test.want, c.Expired(now))
		})
	}
}
