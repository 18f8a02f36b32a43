package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStealthTimeout(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{15 * time.Second, 15},
		{90 * time.Second, 90},
		{2500 * time.Millisecond, 2},
		{300 * time.Millisecond, 1},
		{0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, stealthTimeout(tt.in))
		})
	}
}

func TestConfigFromEnvFetchTimeout(t *testing.T) {
	t.Setenv("STEALTH_ENABLED", "false")
	t.Setenv("FETCH_TIMEOUT", "7s")
	t.Setenv("LLM_API_KEY", "")

	c := ConfigFromEnv()
	assert.Equal(t, 7*time.Second, c.FetchTimeout)
	assert.Equal(t, 7*time.Second, c.HTTPClient.Timeout)
	assert.Nil(t, c.BrowserClient)
	assert.Nil(t, c.LLMClient)
}
