package site

import (
	"errors"
	"net/http"
	"strings"

	"gamestudio/website/internal/consent"
	"gamestudio/website/internal/content"
	"gamestudio/website/internal/mailto"
	"gamestudio/website/internal/models"

	"github.com/gin-gonic/gin"
)

type homeData struct {
	Showcase []content.Card
	News     []models.News
}

// position is a career with its application link.
type position struct {
	models.Career
	ApplyLink string
}

type careersData struct {
	Positions []position
	Error     string
}

type gameData struct {
	Game *models.Game
}

type cookiesData struct {
	StatusCookie    string
	TimestampCookie string
	SessionCookie   string
	ScreenCookie    string
}

func (s *Site) home(c *gin.Context) {
	ctx := c.Request.Context()
	showcase := s.Content.Showcase(ctx)
	news := s.Content.LatestNews(ctx, newsOnHome)

	s.render(c, http.StatusOK, "home", page{
		Title:       "Home",
		Description: "Premium slot games from " + s.Studio + ".",
		Data:        homeData{Showcase: showcase.Data, News: news.Data},
	})
	s.trackPage(c, "Home")
}

func (s *Site) careers(c *gin.Context) {
	res := s.Content.OpenPositions(c.Request.Context())

	var data careersData
	if res.State() == content.Error {
		data.Error = "We couldn't load open positions right now. Please try again later."
	}
	for _, career := range res.Data {
		data.Positions = append(data.Positions, position{
			Career:    career,
			ApplyLink: mailto.Application(s.CareersEmail, career.Title),
		})
	}

	s.render(c, http.StatusOK, "careers", page{Title: "Careers", Data: data})
	s.trackPage(c, "Careers")
}

func (s *Site) game(c *gin.Context) {
	res := s.Content.GameDetail(c.Request.Context(), c.Param("slug"))

	switch {
	case res.State() == content.Success:
		game := res.Data.Game
		s.render(c, http.StatusOK, "game", page{
			Title:       game.Title,
			Description: game.Description,
			Data:        gameData{Game: game},
		})
		s.trackPage(c, game.Title)
	case errors.Is(res.Err, content.ErrGameNotFound):
		s.render(c, http.StatusNotFound, "not_found", page{
			Title: "Game not found",
			Data:  "We couldn't find that game.",
		})
		s.trackPage(c, "Game not found")
	default:
		s.render(c, http.StatusServiceUnavailable, "not_found", page{
			Title: "Something went wrong",
			Data:  "We couldn't load this game right now. Please try again later.",
		})
	}
}

func (s *Site) staticPage(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, name, page{Title: title})
		s.trackPage(c, title)
	}
}

func (s *Site) cookiesPolicy(c *gin.Context) {
	s.render(c, http.StatusOK, "cookies", page{
		Title: "Cookies Policy",
		Data: cookiesData{
			StatusCookie:    consent.KeyStatus,
			TimestampCookie: consent.KeyTimestamp,
			SessionCookie:   SessionCookie,
			ScreenCookie:    ScreenCookie,
		},
	})
	s.trackPage(c, "Cookies Policy")
}

func (s *Site) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	s.render(c, http.StatusNotFound, "not_found", page{Title: "Page not found"})
}
