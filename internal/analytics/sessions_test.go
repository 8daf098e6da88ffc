package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gamestudio/website/internal/analytics"
	"gamestudio/website/internal/consent"
	"gamestudio/website/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsStartSeedsConsent(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	sink := &fakeSink{}
	sessions := analytics.NewSessions(sink, true,
		analytics.WithSessionsClock(func() time.Time { return now }))

	sess := sessions.Start(map[string]string{
		consent.KeyStatus:    "accepted",
		consent.KeyTimestamp: now.Add(-24 * time.Hour).Format(time.RFC3339),
	}, analytics.DeviceInfo{DeviceType: "desktop"})

	assert.Equal(t, 1, sessions.Len())
	assert.Equal(t, consent.Accepted, sess.Consent.Status())

	got, ok := sessions.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	sess.Tracker.OnPageChange(context.Background(), analytics.Page{Path: "/"})
	assert.Equal(t, 1, sink.Attempts())

	_, ok = sessions.Get("session_0_missingid")
	assert.False(t, ok)
}

func TestSessionsSweepUnloadsIdle(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	sink := &fakeSink{}
	var published []models.PageView
	sessions := analytics.NewSessions(sink, true,
		analytics.WithSessionsClock(clock),
		analytics.WithIdleTimeout(10*time.Minute),
		analytics.WithPageViewPublisher(func(pv models.PageView) { published = append(published, pv) }))

	idle := sessions.Start(nil, analytics.DeviceInfo{})
	idle.Consent.Accept()
	idle.Tracker.OnPageChange(context.Background(), analytics.Page{Path: "/careers"})

	advance(8 * time.Minute)
	active := sessions.Start(nil, analytics.DeviceInfo{})

	advance(5 * time.Minute)
	_, _ = sessions.Get(active.ID)

	ended := sessions.Sweep(context.Background())
	assert.Equal(t, 1, ended)
	assert.Equal(t, 1, sessions.Len())

	_, ok := sessions.Get(idle.ID)
	assert.False(t, ok)

	require.Len(t, published, 2, "landing view plus the final unload view")
	assert.Equal(t, "/careers", published[1].PagePath)
	assert.Equal(t, 13*60, published[1].TimeOnPage)
}

func TestSessionsConsentListener(t *testing.T) {
	changes := make(chan consent.Status, 4)
	sessions := analytics.NewSessions(&fakeSink{}, true,
		analytics.WithConsentListener(func(_ *analytics.Session, s consent.Status) { changes <- s }))

	sess := sessions.Start(nil, analytics.DeviceInfo{})
	sess.Consent.Decline()

	select {
	case s := <-changes:
		assert.Equal(t, consent.Declined, s)
	case <-time.After(time.Second):
		t.Fatal("consent listener was not called")
	}
}

func TestSessionsRunClosesAll(t *testing.T) {
	sessions := analytics.NewSessions(&fakeSink{}, false)
	sessions.Start(nil, analytics.DeviceInfo{})
	sessions.Start(nil, analytics.DeviceInfo{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessions.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionsCapEndsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	sink := &fakeSink{}
	sessions := analytics.NewSessions(sink, true,
		analytics.WithSessionsClock(tick),
		analytics.WithMaxSessions(2))

	first := sessions.Start(nil, analytics.DeviceInfo{})
	second := sessions.Start(nil, analytics.DeviceInfo{})
	second.Consent.Accept()
	second.Tracker.OnPageChange(context.Background(), analytics.Page{Path: "/careers"})
	_, _ = sessions.Get(first.ID)

	third := sessions.Start(nil, analytics.DeviceInfo{})

	assert.Equal(t, 2, sessions.Len())
	_, ok := sessions.Get(second.ID)
	assert.False(t, ok, "the least recently seen session is ended")
	_, ok = sessions.Get(first.ID)
	assert.True(t, ok)
	_, ok = sessions.Get(third.ID)
	assert.True(t, ok)

	require.Len(t, sink.pageViews, 2, "ending the session sends its final view")
	assert.Equal(t, "/careers", sink.pageViews[1].PagePath)
}
