package site

import (
	"net/http"
	"time"

	"gamestudio/website/internal/analytics"
	"gamestudio/website/internal/consent"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsentResponse is the visitor's cookie decision.
type ConsentResponse struct {
	Status    consent.Status `json:"status" example:"accepted"`
	Valid     bool           `json:"valid"`
	DecidedAt *time.Time     `json:"decided_at,omitempty"`
}

func newConsentResponse(store *consent.Store) ConsentResponse {
	resp := ConsentResponse{Status: store.Status()}
	if rec, ok := store.Record(); ok {
		resp.Valid = true
		resp.DecidedAt = &rec.DecidedAt
	}
	return resp
}

// consentStatus godoc
// @Summary      Get the cookie decision
// @Tags         consent
// @Produce      json
// @Success      200 {object} ConsentResponse
// @Router       /consent [get]
func (s *Site) consentStatus(c *gin.Context) {
	sess, _ := visitor(c)
	c.JSON(http.StatusOK, newConsentResponse(sess.Consent))
}

// decide godoc
// @Summary      Accept or decline analytics cookies
// @Description  Form posts are redirected to the "redirect" field; JSON callers get the new decision.
// @Tags         consent
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        redirect formData string false "Local path to return to"
// @Success      200 {object} ConsentResponse
// @Success      303
// @Router       /consent/accept [post]
// @Router       /consent/decline [post]
func (s *Site) decide(status consent.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := visitor(c)
		if status == consent.Accepted {
			sess.Consent.Accept()
		} else {
			sess.Consent.Decline()
		}

		if rec, ok := sess.Consent.Record(); ok {
			consent.WriteCookies(c.Writer, rec, s.SecureCookies)
		}
		s.log.Debug("consent decided", zap.String("session_id", sess.ID), zap.String("status", string(status)))

		s.respondConsent(c, sess)
	}
}

// resetConsent forgets the decision so the banner is shown again.
func (s *Site) resetConsent(c *gin.Context) {
	sess, _ := visitor(c)
	sess.Consent.Reset()
	consent.ClearCookies(c.Writer, s.SecureCookies)

	s.respondConsent(c, sess)
}

func (s *Site) respondConsent(c *gin.Context, sess *analytics.Session) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, newConsentResponse(sess.Consent))
		return
	}
	c.Redirect(http.StatusSeeOther, localPath(c.PostForm("redirect")))
}

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON ||
		c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
