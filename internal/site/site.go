// Package site renders the public website and the back-office shells, and
// owns the visitor sessions behind the cookie banner and analytics beacons.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"gamestudio/website/internal/analytics"
	"gamestudio/website/internal/auth"
	"gamestudio/website/internal/consent"
	"gamestudio/website/internal/content"
	"gamestudio/website/internal/dispatch"
	"gamestudio/website/internal/mailto"
	"gamestudio/website/internal/models"
	"gamestudio/website/pkg/logger"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Pages rendered with the shared layout.
var pageNames = []string{
	"home", "careers", "game", "not_found", "privacy", "cookies", "team",
	"admin", "admin_login",
}

const (
	defaultStudio = "Clockwork Reels"
	newsOnHome    = 3
)

// Content is the public content the pages render.
type Content interface {
	Showcase(ctx context.Context) content.Result[[]content.Card]
	LatestNews(ctx context.Context, limit int) content.Result[[]models.News]
	OpenPositions(ctx context.Context) content.Result[[]models.Career]
	GameDetail(ctx context.Context, slug string) content.Result[content.Resolution]
}

// Deps are the collaborators of a Site.
type Deps struct {
	Content       Content
	Sessions      *analytics.Sessions
	Queue         *dispatch.Queue
	Tokens        auth.TokenParser
	Studio        string
	CareersEmail  string
	PartnersEmail string
	SecureCookies bool
	Logger        *zap.Logger
}

// Site serves the HTML pages, consent endpoints and tracking beacons.
type Site struct {
	Deps
	pages map[string]*template.Template
	log   *zap.Logger
	now   func() time.Time
}

// New parses the embedded templates.
func New(d Deps) (*Site, error) {
	if d.Studio == "" {
		d.Studio = defaultStudio
	}
	s := &Site{
		Deps:  d,
		pages: make(map[string]*template.Template, len(pageNames)),
		log:   logger.OrNop(d.Logger).Named("site"),
		now:   time.Now,
	}
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/banner.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

// Register mounts the HTML routes on r.
func (s *Site) Register(r *gin.Engine) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	web := r.Group("/", gzip.Gzip(gzip.DefaultCompression))
	web.StaticFS("/static", http.FS(static))
	web.GET("/about-us/careers", redirect(http.StatusMovedPermanently, "/careers"))
	web.GET("/backoffice", redirect(http.StatusFound, "/admin"))

	pages := web.Group("", s.visitorSession(true))
	pages.GET("/", s.home)
	pages.GET("/careers", s.careers)
	pages.GET("/games/:slug", s.game)
	pages.GET("/privacy-policy", s.staticPage("privacy", "Privacy Policy"))
	pages.GET("/cookies-policy", s.cookiesPolicy)
	pages.GET("/about/our-team", s.staticPage("team", "Our Team"))

	pages.GET("/consent", s.consentStatus)
	pages.POST("/consent/accept", s.decide(consent.Accepted))
	pages.POST("/consent/decline", s.decide(consent.Declined))
	pages.POST("/consent/reset", s.resetConsent)

	admin := web.Group("/admin", auth.OptionalAuthMiddleware(s.Tokens))
	admin.GET("/login", s.adminLogin)
	for _, sec := range adminSections {
		admin.GET(sec.Path[len("/admin"):], s.adminShell(sec))
	}

	r.NoRoute(s.visitorSession(false), s.notFound)
}

// RegisterTracking mounts the analytics beacons on the API group.
func (s *Site) RegisterTracking(api *gin.RouterGroup) {
	track := api.Group("/track", s.visitorSession(false))
	track.POST("/interaction", s.trackInteraction)
	track.POST("/scroll", s.trackScroll)
	track.POST("/unload", s.trackUnload)
}

// page is the data every template receives.
type page struct {
	Title           string
	Description     string
	Path            string
	Studio          string
	Year            int
	Consent         consent.Status
	ShowBanner      bool
	Tracked         bool
	PartnershipLink string
	Data            any
}

func (s *Site) render(c *gin.Context, code int, name string, p page) {
	t, ok := s.pages[name]
	if !ok {
		s.log.Error("unknown template", zap.String("name", name))
		c.String(http.StatusInternalServerError, "template %s not found", name)
		return
	}

	p.Path = c.Request.URL.Path
	p.Studio = s.Studio
	p.Year = s.now().Year()
	p.PartnershipLink = mailto.Partnership(s.PartnersEmail)
	p.Consent = consent.Pending
	if sess, ok := visitor(c); ok {
		p.Consent = sess.Consent.Status()
		p.ShowBanner = p.Consent == consent.Pending
		p.Tracked = p.Consent == consent.Accepted
	}

	// The banner depends on the visitor's cookies.
	c.Header("Cache-Control", "no-store")
	c.Render(code, render.HTML{Template: t, Name: "layout", Data: p})
}

func redirect(code int, to string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(code, to)
	}
}
