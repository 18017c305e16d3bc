package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
	"github.com/crowdbase-dev/crowdbase/internal/models"
	"github.com/crowdbase-dev/crowdbase/internal/services"
)

type AuthHandler struct {
	sessions *services.SessionService
	repos    *domain.Repos
}

func NewAuthHandler(sessions *services.SessionService, repos *domain.Repos) *AuthHandler {
	return &AuthHandler{sessions: sessions, repos: repos}
}

type RegisterRequest struct {
	FullName string        `json:"fullName"`
	Mail     string        `json:"mail"`
	Gender   models.Gender `json:"gender"`
	Role     models.Role   `json:"role"`
	Password string        `json:"password"`
}

type LoginRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.sessions.Register(c.Context(), domain.UserValues{
		FullName: req.FullName,
		Mail:     req.Mail,
		Gender:   req.Gender,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Data(true),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.sessions.Login(c.Context(), req.Mail, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Data(true),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.Context(), bearerToken(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the caller's own account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := bearerToken(c)
	caller, err := h.repos.Resolver().RequireAuth(c.Context(), token)
	if err != nil {
		return err
	}
	user, err := h.repos.Users.Get(c.Context(), token, caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user.Data(true)})
}

// Sessions lists the caller's open sessions.
func (h *AuthHandler) Sessions(c *fiber.Ctx) error {
	sessions, err := h.sessions.Sessions(c.Context(), bearerToken(c))
	if err != nil {
		return err
	}
	out := make([]map[string]any, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Data(true))
	}
	return c.JSON(fiber.Map{"sessions": out})
}
