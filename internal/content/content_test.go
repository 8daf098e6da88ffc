package content_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gamestudio/website/internal/content"
	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGames struct {
	games []models.Game
	err   error
}

func (f *fakeGames) List(_ context.Context, _ repository.ListOptions) (repository.Set[models.Game], error) {
	if f.err != nil {
		return repository.Set[models.Game]{}, f.err
	}
	return repository.Set[models.Game]{Items: f.games, Total: int64(len(f.games))}, nil
}

func (f *fakeGames) ListAvailable(_ context.Context) ([]models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Game
	for _, g := range f.games {
		if g.IsAvailable {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGames) GetByRoute(_ context.Context, route string) (*models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.games {
		if f.games[i].Route == route {
			return &f.games[i], nil
		}
	}
	return nil, fmt.Errorf("%w: route %s", database.ErrNotFound, route)
}

type fakeNews struct {
	items []models.News
	err   error
}

func (f *fakeNews) List(_ context.Context, _ bool, opts repository.ListOptions) (repository.Set[models.News], error) {
	if f.err != nil {
		return repository.Set[models.News]{}, f.err
	}
	items := f.items
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return repository.Set[models.News]{Items: items, Total: int64(len(f.items))}, nil
}

type fakeCareers struct {
	items []models.Career
	err   error
}

func (f *fakeCareers) List(_ context.Context, _ bool) ([]models.Career, error) {
	return f.items, f.err
}

var unreachable = fmt.Errorf("%w: dial tcp 10.0.0.1:5432: connect: connection refused", database.ErrUnavailable)

func library() []models.Game {
	return []models.Game{
		{Title: "Poseidon's Vault", Route: "/games/poseidons-vault", IsAvailable: true},
		{Title: "Medusa Reels Deluxe", Route: "/games/medusa", IsAvailable: true},
		{Title: "Hades Underworld Riches", Route: "/games/hades-underworld-riches", IsAvailable: false},
	}
}

func TestShowcase(t *testing.T) {
	ctx := context.Background()

	t.Run("lists available games and a coming soon card", func(t *testing.T) {
		catalog := content.NewCatalog(&fakeGames{games: library()}, &fakeNews{}, &fakeCareers{}, nil)
		res := catalog.Showcase(ctx)

		require.NoError(t, res.Err)
		assert.False(t, res.Fallback)
		require.Len(t, res.Data, 3)
		assert.Equal(t, "Poseidon's Vault", res.Data[0].Title)
		assert.True(t, res.Data[2].ComingSoon)
	})

	for name, games := range map[string]*fakeGames{
		"query fails":   {err: unreachable},
		"query empty":   {},
		"none released": {games: []models.Game{{Title: "Hidden", IsAvailable: false}}},
	} {
		t.Run(name+" masks with the fallback title", func(t *testing.T) {
			catalog := content.NewCatalog(games, &fakeNews{}, &fakeCareers{}, nil)
			res := catalog.Showcase(ctx)

			assert.True(t, res.Fallback)
			assert.Error(t, res.Err)
			assert.Equal(t, content.Success, res.State())
			require.Len(t, res.Data, 2)
			assert.Equal(t, content.FallbackGameTitle, res.Data[0].Title)
			assert.Equal(t, content.FallbackGameRoute, res.Data[0].Route)
			assert.True(t, res.Data[1].ComingSoon)
		})
	}
}

func TestLatestNews(t *testing.T) {
	ctx := context.Background()

	t.Run("failure is masked with sample news", func(t *testing.T) {
		catalog := content.NewCatalog(&fakeGames{}, &fakeNews{err: unreachable}, &fakeCareers{}, nil)
		res := catalog.LatestNews(ctx, 2)
		assert.True(t, res.Fallback)
		assert.ErrorIs(t, res.Err, database.ErrUnavailable)
		assert.Len(t, res.Data, 2)
	})

	t.Run("loaded news is returned as is", func(t *testing.T) {
		news := []models.News{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}}
		catalog := content.NewCatalog(&fakeGames{}, &fakeNews{items: news}, &fakeCareers{}, nil)
		res := catalog.LatestNews(ctx, 0)
		assert.NoError(t, res.Err)
		assert.Len(t, res.Data, 3)
	})
}

func TestOpenPositionsShowsErrors(t *testing.T) {
	catalog := content.NewCatalog(&fakeGames{}, &fakeNews{}, &fakeCareers{err: unreachable}, nil)
	res := catalog.OpenPositions(context.Background())

	assert.False(t, res.Fallback)
	assert.Equal(t, content.Error, res.State())
	assert.Empty(t, res.Data)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	resolvers := content.Resolvers(&fakeGames{games: library()})

	tests := []struct {
		slug     string
		title    string
		strategy string
	}{
		{"poseidons-vault", "Poseidon's Vault", "route"},
		{"/games/medusa", "Medusa Reels Deluxe", "route"},
		{"underworld-riches", "Hades Underworld Riches", "title"},
		{"medusa-reels", "Medusa Reels Deluxe", "title"},
		{"vault-of-gold", "Poseidon's Vault", "available-scan"},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			res, err := content.Resolve(ctx, tt.slug, resolvers)
			require.NoError(t, err)
			assert.Equal(t, tt.title, res.Game.Title)
			assert.Equal(t, tt.strategy, res.Strategy)
		})
	}

	t.Run("no match is not found", func(t *testing.T) {
		_, err := content.Resolve(ctx, "zzz-qqq", resolvers)
		assert.ErrorIs(t, err, content.ErrGameNotFound)
	})

	t.Run("empty slug is not found", func(t *testing.T) {
		_, err := content.Resolve(ctx, " / ", resolvers)
		assert.ErrorIs(t, err, content.ErrGameNotFound)
	})

	t.Run("backend errors stop the chain", func(t *testing.T) {
		_, err := content.Resolve(ctx, "medusa", content.Resolvers(&fakeGames{err: unreachable}))
		assert.ErrorIs(t, err, database.ErrUnavailable)
	})
}

func TestGameDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("partial title resolves to the game", func(t *testing.T) {
		catalog := content.NewCatalog(&fakeGames{games: library()}, &fakeNews{}, &fakeCareers{}, nil)
		res := catalog.GameDetail(ctx, "hades-underworld")
		require.NoError(t, res.Err)
		assert.Equal(t, "Hades Underworld Riches", res.Data.Game.Title)
	})

	t.Run("unknown slug is an error", func(t *testing.T) {
		catalog := content.NewCatalog(&fakeGames{games: library()}, &fakeNews{}, &fakeCareers{}, nil)
		res := catalog.GameDetail(ctx, "xyzzy")
		assert.ErrorIs(t, res.Err, content.ErrGameNotFound)
		assert.Equal(t, content.Error, res.State())
	})

	t.Run("fallback title survives an unreachable backend", func(t *testing.T) {
		catalog := content.NewCatalog(&fakeGames{err: unreachable}, &fakeNews{}, &fakeCareers{}, nil)
		res := catalog.GameDetail(ctx, strings.TrimPrefix(content.FallbackGameRoute, "/games/"))
		assert.True(t, res.Fallback)
		assert.Equal(t, content.FallbackGameTitle, res.Data.Game.Title)
	})

	t.Run("other slugs fail when the backend is unreachable", func(t *testing.T) {
		catalog := content.NewCatalog(&fakeGames{err: unreachable}, &fakeNews{}, &fakeCareers{}, nil)
		res := catalog.GameDetail(ctx, "medusa")
		assert.False(t, res.Fallback)
		assert.True(t, errors.Is(res.Err, database.ErrUnavailable))
	})
}

func TestResultOrFallback(t *testing.T) {
	ok := content.Ok(1).OrFallback(2)
	assert.Equal(t, 1, ok.Data)
	assert.False(t, ok.Fallback)

	failed := content.Fail[int](errors.New("boom"))
	assert.Equal(t, content.Error, failed.State())
	masked := failed.OrFallback(2)
	assert.Equal(t, 2, masked.Data)
	assert.True(t, masked.Fallback)
	assert.EqualError(t, masked.Err, "boom")
	assert.Equal(t, "success", masked.State().String())
}
