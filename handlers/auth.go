package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"keeper/middleware"
	"keeper/models"
	"keeper/services"
)

// SocialLogin redirects the browser to the provider's consent page.
func (h *Handler) SocialLogin(c *fiber.Ctx) error {
	if _, err := h.resolveProvider(c.Params("provider")); err != nil {
		return err
	}
	return c.Redirect(h.Google.AuthURL(), fiber.StatusTemporaryRedirect)
}

// SocialLoginCallback exchanges the authorization code, resolves the
// user (creating it on first login) and issues session cookies.
func (h *Handler) SocialLoginCallback(c *fiber.Ctx) error {
	provider, err := h.resolveProvider(c.Params("provider"))
	if err != nil {
		return err
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing authorization code",
		})
	}

	info, err := h.Google.Exchange(code)
	if err != nil {
		return err
	}

	user, err := h.Users.GetOrCreate(provider, *info)
	if err != nil {
		return err
	}

	tokens, err := middleware.IssueTokens(h.Cfg, user)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, tokens.AccessToken, tokens.RefreshToken)
	h.Audit.Log(user.ID, models.AuditActionLogin, "", string(provider), c.IP())

	return c.Redirect(h.Cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}

// Logout clears the session cookies.
func (h *Handler) Logout(c *fiber.Ctx) error {
	h.setSessionCookies(c, "", "")
	return c.Redirect(h.Cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}

// GetCurrentUser returns the currently authenticated user
func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	user, err := h.Users.Get(userID)
	if err != nil {
		return err
	}

	return c.JSON(user.ToResponse())
}

// ListUsers returns users, paginated.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)

	users, err := h.Users.Fetch(offset, limit)
	if err != nil {
		return err
	}

	responses := make([]models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}

	return c.JSON(responses)
}

// UpdateUser updates the caller's own profile.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if uint(userID) != middleware.GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only your own profile can be updated",
		})
	}

	var input models.UserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.Users.Update(uint(userID), input)
	if err != nil {
		return err
	}

	h.Audit.Log(user.ID, models.AuditActionUserUpdate, "", "", c.IP())

	return c.JSON(user.ToResponse())
}

// DeleteUser soft-deletes the caller's own account.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if uint(userID) != middleware.GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only your own account can be deleted",
		})
	}

	if err := h.Users.Delete(uint(userID)); err != nil {
		return err
	}

	h.Audit.Log(uint(userID), models.AuditActionUserDelete, "", "", c.IP())

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) resolveProvider(name string) (models.Provider, error) {
	return services.SupportedProvider(name)
}

func (h *Handler) setSessionCookies(c *fiber.Ctx, access, refresh string) {
	maxAge := 60 * 60 * 24 * 30
	if access == "" {
		maxAge = -1
	}
	for key, value := range map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	} {
		c.Cookie(&fiber.Cookie{
			Name:     key,
			Value:    value,
			MaxAge:   maxAge,
			Domain:   h.Cfg.CookieDomain,
			Path:     "/",
			HTTPOnly: true,
			Secure:   h.Cfg.Production,
			Expires:  time.Now().Add(time.Duration(maxAge) * time.Second),
		})
	}
}
