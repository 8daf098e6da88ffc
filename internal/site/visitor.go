package site

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gamestudio/website/internal/analytics"
	"gamestudio/website/internal/consent"
	"gamestudio/website/internal/dispatch"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cookie names owned by the site.
const (
	SessionCookie = "studio_sid"
	ScreenCookie  = "studio_screen"
)

const visitorKey = "visitor"

// visitorSession attaches the visitor's analytics session to the request.
// With create set, a visitor without a live session gets a new one seeded
// from their consent cookies.
func (s *Site) visitorSession(create bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(SessionCookie); err == nil {
			if sess, ok := s.Sessions.Get(id); ok {
				c.Set(visitorKey, sess)
				c.Next()
				return
			}
		}
		if !create {
			c.Next()
			return
		}

		seed := consent.CookieValues(c.Request)
		device := analytics.ParseDevice(c.Request.UserAgent(), c.GetHeader("Accept-Language"))
		sess := s.Sessions.Start(seed, device)

		// Expired or unreadable decisions are dropped from the browser too.
		if len(seed) > 0 && sess.Consent.Status() == consent.Pending {
			consent.ClearCookies(c.Writer, s.SecureCookies)
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID, 0, "/", "", s.SecureCookies, true)
		c.Set(visitorKey, sess)
		c.Next()
	}
}

func visitor(c *gin.Context) (*analytics.Session, bool) {
	v, ok := c.Get(visitorKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*analytics.Session)
	return sess, ok
}

// trackPage queues a page view for the current request.
func (s *Site) trackPage(c *gin.Context, title string) {
	sess, ok := visitor(c)
	if !ok {
		return
	}

	p := analytics.Page{
		Path:     c.Request.URL.Path,
		Title:    title,
		Referrer: externalReferrer(c.Request),
	}
	var opts []analytics.PageViewOption
	if w, h, ok := screenSize(c); ok {
		opts = append(opts, analytics.WithScreen(w, h))
	}

	// Without consent the tracker makes no network call, so the page change
	// is applied inline and cannot be reordered after a later decision.
	if sess.Consent.Status() != consent.Accepted {
		sess.Tracker.OnPageChange(c.Request.Context(), p, opts...)
		return
	}
	s.enqueue(analytics.KindPageView, func(ctx context.Context) {
		sess.Tracker.OnPageChange(ctx, p, opts...)
	})
}

func (s *Site) enqueue(kind string, run func(ctx context.Context)) {
	if err := s.Queue.Enqueue(dispatch.Job{Kind: kind, Run: run}); err != nil {
		s.log.Debug("analytics event dropped", zap.String("kind", kind), zap.Error(err))
	}
}

// externalReferrer returns the Referer header when it points at another
// site. Internal navigation is filled in by the tracker.
func externalReferrer(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" || u.Host == r.Host {
		return ""
	}
	return ref
}

// screenSize reads the "<width>x<height>" cookie set by the tracking script.
func screenSize(c *gin.Context) (int, int, bool) {
	v, err := c.Cookie(ScreenCookie)
	if err != nil {
		return 0, 0, false
	}
	ws, hs, ok := strings.Cut(v, "x")
	if !ok {
		return 0, 0, false
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// localPath returns target when it is a path on this site, "/" otherwise.
func localPath(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
