package app

import (
	"errors"
	"time"

	"social_chat_service/internal/member/repository"
	"social_chat_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler 處理帳號相關的 HTTP 請求
type MemberHandler struct {
	Usecase MemberUseCase
}

// NewMemberHandler 建立新的 MemberHandler
func NewMemberHandler(usecase MemberUseCase) *MemberHandler {
	return &MemberHandler{Usecase: usecase}
}

// Signup 註冊新帳號
func (h *MemberHandler) Signup(c *fiber.Ctx) error {
	type request struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Signup request", zap.String("username", req.Username), zap.String("email", req.Email))

	member, err := h.Usecase.Register(c.Context(), req.Email, req.Password, req.Username, req.Phone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "User registered successfully",
		"username": member.Username,
	})
}

// Login 登入, loginContact 可以是 email / username / phone
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	type request struct {
		LoginContact  string `json:"loginContact"`
		LoginPassword string `json:"loginPassword"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login", zap.String("loginContact", req.LoginContact))

	member, token, err := h.Usecase.Login(c.Context(), req.LoginContact, req.LoginPassword)
	if err != nil {
		if errors.Is(err, ErrInvalidLogin) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"memberId": member.MemberID,
			"username": member.Username,
			"email":    member.Email,
			"phone":    member.Phone,
			"status":   member.Status.String(),
		},
	})
}

// Logout 登出
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	type request struct {
		Username string `json:"username"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Info("logout", zap.String("username", req.Username))

	if _, err := h.Usecase.Logout(c.Context(), req.Username); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.ClearCookie("auth_token")
	return c.JSON(fiber.Map{"message": "User logged out successfully"})
}
