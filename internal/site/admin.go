package site

import (
	"net/http"
	"net/url"

	"gamestudio/website/internal/auth"

	"github.com/gin-gonic/gin"
)

// adminSection is one back-office screen and the API it reads.
type adminSection struct {
	Name     string
	Path     string
	Endpoint string
	Live     string
}

var adminSections = []adminSection{
	{Name: "Dashboard", Path: "/admin", Endpoint: "/api/v1/auth/me"},
	{Name: "Games", Path: "/admin/games", Endpoint: "/api/v1/admin/games"},
	{Name: "News", Path: "/admin/news", Endpoint: "/api/v1/admin/news"},
	{Name: "Careers", Path: "/admin/careers", Endpoint: "/api/v1/admin/careers"},
	{Name: "Users", Path: "/admin/users", Endpoint: "/api/v1/admin/users"},
	{Name: "Analytics", Path: "/admin/analytics", Endpoint: "/api/v1/admin/analytics/summary", Live: "/api/v1/admin/analytics/live"},
}

type adminData struct {
	Sections []adminSection
	Endpoint string
	Live     string
}

// adminShell renders a back-office screen. The data itself comes from the
// JSON API, which checks the admin flag.
func (s *Site) adminShell(sec adminSection) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.ProfileID(c); !ok {
			c.Redirect(http.StatusFound, "/admin/login?next="+url.QueryEscape(sec.Path))
			return
		}
		s.render(c, http.StatusOK, "admin", page{
			Title: sec.Name,
			Data:  adminData{Sections: adminSections, Endpoint: sec.Endpoint, Live: sec.Live},
		})
	}
}

func (s *Site) adminLogin(c *gin.Context) {
	next := "/admin"
	if q := c.Query("next"); q != "" {
		next = localPath(q)
	}
	if _, ok := auth.ProfileID(c); ok {
		c.Redirect(http.StatusFound, next)
		return
	}
	s.render(c, http.StatusOK, "admin_login", page{Title: "Sign in", Data: next})
}
