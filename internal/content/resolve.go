package content

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"
)

// ErrGameNotFound means no resolver matched a slug.
var ErrGameNotFound = errors.New("game not found")

// GameSource is the game data the catalog reads.
type GameSource interface {
	List(ctx context.Context, opts repository.ListOptions) (repository.Set[models.Game], error)
	ListAvailable(ctx context.Context) ([]models.Game, error)
	GetByRoute(ctx context.Context, route string) (*models.Game, error)
}

// Resolver maps a URL slug to a game. A nil game with a nil error means no
// match, and the next resolver is tried.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, slug string) (*models.Game, error)
}

// Resolution is a matched game and the resolver that found it.
type Resolution struct {
	Game     *models.Game
	Strategy string
}

// Resolvers returns the game lookup chain: exact route, title substring,
// then any available game sharing a slug word. The last two are heuristics
// and can pick the wrong game for short or generic slugs.
func Resolvers(games GameSource) []Resolver {
	return []Resolver{
		routeResolver{games},
		titleResolver{games},
		availableScanResolver{games},
	}
}

// Resolve runs resolvers in order and stops at the first match or error.
func Resolve(ctx context.Context, slug string, resolvers []Resolver) (Resolution, error) {
	slug = slugOf(slug)
	if slug == "" {
		return Resolution{}, ErrGameNotFound
	}
	for _, r := range resolvers {
		game, err := r.Resolve(ctx, slug)
		if err != nil {
			return Resolution{}, err
		}
		if game != nil {
			return Resolution{Game: game, Strategy: r.Name()}, nil
		}
	}
	return Resolution{}, ErrGameNotFound
}

type routeResolver struct{ games GameSource }

func (routeResolver) Name() string { return "route" }

func (r routeResolver) Resolve(ctx context.Context, slug string) (*models.Game, error) {
	for _, route := range []string{"/games/" + slug, slug} {
		game, err := r.games.GetByRoute(ctx, route)
		switch {
		case err == nil:
			return game, nil
		case errors.Is(err, database.ErrNotFound):
			continue
		default:
			return nil, err
		}
	}
	return nil, nil
}

type titleResolver struct{ games GameSource }

func (titleResolver) Name() string { return "title" }

func (r titleResolver) Resolve(ctx context.Context, slug string) (*models.Game, error) {
	set, err := r.games.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	phrase := strings.Join(words(slug), " ")
	for i := range set.Items {
		if strings.Contains(strings.Join(words(set.Items[i].Title), " "), phrase) {
			return &set.Items[i], nil
		}
	}
	return nil, nil
}

type availableScanResolver struct{ games GameSource }

func (availableScanResolver) Name() string { return "available-scan" }

func (r availableScanResolver) Resolve(ctx context.Context, slug string) (*models.Game, error) {
	games, err := r.games.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	tokens := words(slug)
	for i := range games {
		title := strings.Join(words(games[i].Title), " ")
		for _, tok := range tokens {
			if strings.Contains(title, tok) {
				return &games[i], nil
			}
		}
	}
	return nil, nil
}

// words lowercases s and splits it on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
