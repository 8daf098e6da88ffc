package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScrollSampler(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewScrollSampler(FrameInterval, func() time.Time { return now })

	assert.True(t, s.Record(30))
	assert.Equal(t, 30, s.Depth())

	// Same frame: coalesced, not applied yet.
	now = now.Add(5 * time.Millisecond)
	assert.False(t, s.Record(60))
	assert.False(t, s.Record(50))
	assert.Equal(t, 60, s.Depth())

	// Next frame applies the pending maximum.
	now = now.Add(FrameInterval)
	assert.True(t, s.Record(10))
	assert.Equal(t, 60, s.Depth())

	now = now.Add(FrameInterval)
	assert.False(t, s.Record(20), "scrolling up never lowers the depth")

	s.Reset()
	assert.Equal(t, 0, s.Depth())
}

func TestScrollSamplerClamps(t *testing.T) {
	s := NewScrollSampler(0, nil)
	assert.True(t, s.Record(250))
	assert.Equal(t, 100, s.Depth())

	s.Reset()
	assert.False(t, s.Record(-5))
	assert.Equal(t, 0, s.Depth())
}

func TestParseDevice(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		lang string
		want DeviceInfo
	}{
		{
			name: "desktop chrome on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
			lang: "fr-FR,fr;q=0.9,en;q=0.8",
			want: DeviceInfo{DeviceType: "desktop", Browser: "chrome", OS: "windows", Language: "fr-FR"},
		},
		{
			name: "edge is not reported as chrome",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/126.0 Safari/537.36 Edg/126.0",
			want: DeviceInfo{DeviceType: "desktop", Browser: "edge", OS: "windows"},
		},
		{
			name: "android tablet",
			ua:   "Mozilla/5.0 (Linux; Android 14; SM-X710) AppleWebKit/537.36 Chrome/126.0 Safari/537.36",
			lang: "de",
			want: DeviceInfo{DeviceType: "tablet", Browser: "chrome", OS: "android", Language: "de"},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
			want: DeviceInfo{DeviceType: "desktop", Browser: "firefox", OS: "linux"},
		},
		{
			name: "safari on mac",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 Version/17.5 Safari/605.1.15",
			want: DeviceInfo{DeviceType: "desktop", Browser: "safari", OS: "macos"},
		},
		{
			name: "empty",
			want: DeviceInfo{DeviceType: "desktop", Browser: "other", OS: "other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDevice(tt.ua, tt.lang)
			tt.want.UserAgent = tt.ua
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionID(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	a := NewSessionID(now)
	b := NewSessionID(now)

	assert.True(t, ValidSessionID(a))
	assert.Regexp(t, `^session_1718000000123_[0-9a-z]{9}$`, a)
	assert.NotEqual(t, a, b)

	for _, bad := range []string{"", "session_", "session_abc_123456789", "session_1_short", "visit_1_abcdefghi", "session__abcdefghi"} {
		assert.False(t, ValidSessionID(bad), bad)
	}
}
