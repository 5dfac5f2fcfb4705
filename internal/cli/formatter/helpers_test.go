package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour)))

	old := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024", HumanTimestamp(old))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "2.0KB", FormatBytes(2048))
	assert.Equal(t, "5.0MB", FormatBytes(5<<20))
}

func TestTruncID(t *testing.T) {
	out := TruncID("abcdefghijklmnop")
	assert.Contains(t, out, "abcdefgh")
	assert.NotContains(t, out, "abcdefghi")
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Profile", "content here")
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "content here")
}
