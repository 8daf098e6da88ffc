package handler

import (
	"errors"
	"net/http"

	"gamestudio/website/internal/auth"
	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// LoginInput defines the structure for admin login.
type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email" example:"admin@studio.example"`
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

// AuthUser is the identity half of the session shape.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MeResponse is the current session: user, profile and admin flag.
type MeResponse struct {
	User    AuthUser        `json:"user"`
	Profile *models.Profile `json:"profile"`
	IsAdmin bool            `json:"is_admin"`
}

// LoginResponse carries the signed token and the session it opens.
type LoginResponse struct {
	Token string `json:"token"`
	MeResponse
}

func newMeResponse(p *models.Profile) MeResponse {
	return MeResponse{
		User:    AuthUser{ID: p.ID.String(), Email: p.Email},
		Profile: p,
		IsAdmin: p.IsAdmin,
	}
}

// endregion

// region --- Auth Handlers ---

// LoginUser godoc
// @Summary      Log in to the back office
// @Description  Exchanges email and password for a token. The token is also set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      503 {object} ErrorResponse "Backend unavailable"
// @Router       /auth/login [post]
func (h *Handler) LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Admins.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.fail(c, err, "Invalid credentials", "Failed to log in")
		return
	}

	profile, err := h.Profiles.Get(ctx, user.ProfileID)
	if err != nil {
		h.fail(c, err, "Profile not found", "Failed to load profile")
		return
	}

	token, err := h.Tokens.GenerateToken(profile.ID)
	if err != nil {
		h.log.Error("sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(h.TokenTTL.Seconds()), "/", "", h.SecureCookies, true)
	h.log.Info("admin login", zap.String("profile_id", profile.ID.String()))

	c.JSON(http.StatusOK, LoginResponse{Token: token, MeResponse: newMeResponse(profile)})
}

// GetMe godoc
// @Summary      Get the current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MeResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Profile not found"
// @Router       /auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	profileID, ok := auth.ProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.Profiles.Get(c.Request.Context(), profileID)
	if err != nil {
		h.fail(c, err, "Profile not found", "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, newMeResponse(profile))
}

// LogoutUser godoc
// @Summary      Log out
// @Description  Clears the session cookie. Bearer tokens stay valid until they expire.
// @Tags         auth
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /auth/logout [post]
func (h *Handler) LogoutUser(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// endregion
