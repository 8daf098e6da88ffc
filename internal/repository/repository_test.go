package repository

import (
	"context"
	"testing"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilHandleIsUnavailable(t *testing.T) {
	ctx := context.Background()
	repos := New(nil)
	id := uuid.New()

	calls := []struct {
		name string
		call func() error
	}{
		{"games.List", func() error { _, err := repos.Games.List(ctx, ListOptions{}); return err }},
		{"games.ListAvailable", func() error { _, err := repos.Games.ListAvailable(ctx); return err }},
		{"games.GetByRoute", func() error { _, err := repos.Games.GetByRoute(ctx, "/games/x"); return err }},
		{"games.Create", func() error { return repos.Games.Create(ctx, &models.Game{}) }},
		{"games.SetAvailability", func() error { return repos.Games.SetAvailability(ctx, id, true) }},
		{"games.Delete", func() error { return repos.Games.Delete(ctx, id) }},
		{"news.List", func() error { _, err := repos.News.List(ctx, true, ListOptions{}); return err }},
		{"news.SetPublished", func() error { return repos.News.SetPublished(ctx, id, true) }},
		{"careers.List", func() error { _, err := repos.Careers.List(ctx, true); return err }},
		{"careers.Move", func() error { return repos.Careers.Move(ctx, id, Up) }},
		{"profiles.Get", func() error { _, err := repos.Profiles.Get(ctx, id); return err }},
		{"profiles.SetAdmin", func() error { return repos.Profiles.SetAdmin(ctx, id, true) }},
		{"admin.Authenticate", func() error { _, err := repos.AdminUsers.Authenticate(ctx, "a@b.c", "pw"); return err }},
		{"admin.EnsureBootstrap", func() error { _, err := repos.AdminUsers.EnsureBootstrap(ctx, "a@b.c", "pw"); return err }},
		{"analytics.InsertPageView", func() error { return repos.Analytics.InsertPageView(ctx, &models.PageView{}) }},
		{"analytics.InsertInteraction", func() error { return repos.Analytics.InsertInteraction(ctx, &models.UserInteraction{}) }},
		{"analytics.UpsertSession", func() error { return repos.Analytics.UpsertSession(ctx, &models.UserSession{}) }},
		{"analytics.Summary", func() error { _, err := repos.Analytics.Summary(ctx, 7); return err }},
		{"analytics.RecentPageViews", func() error { _, err := repos.Analytics.RecentPageViews(ctx, 10); return err }},
	}

	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, database.ErrUnavailable)
			assert.True(t, database.IsConnectivity(err))
		})
	}
}

func TestListOptionsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{"defaults", ListOptions{}, ListOptions{Page: 1, Limit: DefaultLimit}},
		{"negative page", ListOptions{Page: -3, Limit: 20}, ListOptions{Page: 1, Limit: 20}},
		{"limit capped", ListOptions{Page: 2, Limit: 500, Query: "zeus"}, ListOptions{Page: 2, Limit: MaxLimit, Query: "zeus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}

	opts := ListOptions{Page: 3, Limit: 25}
	assert.True(t, opts.paged())
	assert.Equal(t, 50, opts.offset())
	assert.False(t, ListOptions{}.paged())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "admin@studio.example", normalizeEmail("  Admin@Studio.Example "))
}
