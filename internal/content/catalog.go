package content

import (
	"context"
	"errors"
	"strings"

	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"
	"gamestudio/website/pkg/logger"
	"gamestudio/website/pkg/metrics"

	"go.uber.org/zap"
)

// Section names used in logs and metrics.
const (
	SectionShowcase   = "showcase"
	SectionNews       = "news"
	SectionCareers    = "careers"
	SectionGameDetail = "game_detail"
)

const defaultNewsLimit = 3

// errEmpty marks an empty showcase so it can be masked like a failure.
var errEmpty = errors.New("no games available")

// NewsSource is the news data the catalog reads.
type NewsSource interface {
	List(ctx context.Context, publishedOnly bool, opts repository.ListOptions) (repository.Set[models.News], error)
}

// CareerSource is the careers data the catalog reads.
type CareerSource interface {
	List(ctx context.Context, activeOnly bool) ([]models.Career, error)
}

// Card is one tile of the public game list.
type Card struct {
	Title       string
	Description string
	MediaURL    string
	Route       string
	Feature     string
	ComingSoon  bool
}

// Catalog serves the public site's content sections.
type Catalog struct {
	games     GameSource
	news      NewsSource
	careers   CareerSource
	resolvers []Resolver
	log       *zap.Logger
}

// NewCatalog builds a catalog. A nil logger discards output.
func NewCatalog(games GameSource, news NewsSource, careers CareerSource, log *zap.Logger) *Catalog {
	return &Catalog{
		games:     games,
		news:      news,
		careers:   careers,
		resolvers: Resolvers(games),
		log:       logger.OrNop(log).Named("content"),
	}
}

// Games loads the available games without masking.
func (c *Catalog) Games(ctx context.Context) Result[[]models.Game] {
	games, err := c.games.ListAvailable(ctx)
	if err != nil {
		return Fail[[]models.Game](err)
	}
	if len(games) == 0 {
		return Fail[[]models.Game](errEmpty)
	}
	return Ok(games)
}

// Showcase returns the public game list. A failed or empty load is masked
// with the fallback title. The coming-soon card is always last.
func (c *Catalog) Showcase(ctx context.Context) Result[[]Card] {
	res := maskResult(c.log, SectionShowcase, c.Games(ctx), []models.Game{FallbackGame()})

	cards := make([]Card, 0, len(res.Data)+1)
	for _, g := range res.Data {
		cards = append(cards, Card{
			Title:       g.Title,
			Description: g.Description,
			MediaURL:    g.MediaURL,
			Route:       g.Route,
			Feature:     g.Feature,
		})
	}
	cards = append(cards, Card{Title: ComingSoonTitle, ComingSoon: true})
	return Result[[]Card]{Data: cards, Err: res.Err, Fallback: res.Fallback}
}

// LatestNews returns the newest published articles, masked with sample news
// when the backend fails.
func (c *Catalog) LatestNews(ctx context.Context, limit int) Result[[]models.News] {
	if limit < 1 {
		limit = defaultNewsLimit
	}
	set, err := c.news.List(ctx, true, repository.ListOptions{Page: 1, Limit: limit})
	if err != nil {
		sample := SampleNews()
		return maskResult(c.log, SectionNews, Fail[[]models.News](err), sample[:min(limit, len(sample))])
	}
	return Ok(set.Items)
}

// OpenPositions returns the active careers. Failures are not masked.
func (c *Catalog) OpenPositions(ctx context.Context) Result[[]models.Career] {
	careers, err := c.careers.List(ctx, true)
	if err != nil {
		c.log.Error("load careers", zap.String("section", SectionCareers), zap.Error(err))
		return Fail[[]models.Career](err)
	}
	return Ok(careers)
}

// GameDetail resolves a slug to a game. The fallback title always resolves
// on its own route, like it is always listed by Showcase.
func (c *Catalog) GameDetail(ctx context.Context, slug string) Result[Resolution] {
	res, err := Resolve(ctx, slug, c.resolvers)
	if err == nil {
		if res.Strategy != "route" {
			c.log.Info("game resolved heuristically",
				zap.String("slug", slug), zap.String("strategy", res.Strategy), zap.String("title", res.Game.Title))
		}
		return Ok(res)
	}

	fallback := FallbackGame()
	if "/games/"+slugOf(slug) == fallback.Route {
		return maskResult(c.log, SectionGameDetail, Fail[Resolution](err), Resolution{Game: &fallback, Strategy: "fallback"})
	}
	if !errors.Is(err, ErrGameNotFound) {
		c.log.Error("resolve game", zap.String("slug", slug), zap.Error(err))
	}
	return Fail[Resolution](err)
}

func maskResult[T any](log *zap.Logger, section string, r Result[T], fallback T) Result[T] {
	if r.Err == nil {
		return r
	}
	log.Warn("showing placeholder content", zap.String("section", section), zap.Error(r.Err))
	metrics.RecordContentFallback(section)
	return r.OrFallback(fallback)
}

func slugOf(s string) string {
	return strings.TrimPrefix(strings.Trim(strings.ToLower(strings.TrimSpace(s)), "/"), "games/")
}
