package discord

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"moderation-service/internal/execution"
)

func restError(statusCode int, status string) *discordgo.RESTError {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: statusCode, Status: status},
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		permanent  bool
		retryAfter time.Duration
	}{
		{
			name:      "missing permissions",
			err:       restError(http.StatusForbidden, "403 Forbidden"),
			permanent: true,
		},
		{
			name:      "unknown member",
			err:       restError(http.StatusNotFound, "404 Not Found"),
			permanent: true,
		},
		{
			name:      "malformed request",
			err:       restError(http.StatusBadRequest, "400 Bad Request"),
			permanent: true,
		},
		{
			name: "platform outage",
			err:  restError(http.StatusBadGateway, "502 Bad Gateway"),
		},
		{
			name: "network failure",
			err:  errors.New("connection reset by peer"),
		},
		{
			name: "rate limited",
			err: &discordgo.RateLimitError{
				RateLimit: &discordgo.RateLimit{
					TooManyRequests: &discordgo.TooManyRequests{RetryAfter: 3 * time.Second},
					URL:             "/guilds/1/bans/2",
				},
			},
			retryAfter: 3 * time.Second,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			translated := translateError(test.err)

			assert.ErrorIs(t, translated, test.err)
			assert.Equal(t, test.permanent, execution.IsPermanent(translated))

			var rateLimited *execution.RateLimitedError
			if test.retryAfter > 0 {
				assert.True(t, errors.As(translated, &rateLimited))
				assert.Equal(t, test.retryAfter, rateLimited.RetryAfter)
			} else {
				assert.False(t, errors.As(translated, &rateLimited))
			}
		})
	}
}

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, translateError(nil))
}
