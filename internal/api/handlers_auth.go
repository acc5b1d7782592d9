package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/keerthireddymada/plan-her-new/internal/models"
	"github.com/keerthireddymada/plan-her-new/internal/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if message := validateCredentials(request); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	user, err := handler.authService.Register(request.Email, request.Password, request.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return apiError(c, fiber.StatusConflict, "email already registered")
		}
		handler.logger.Error().Err(err).Msg("registration failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	return handler.respondWithToken(c, user, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, services.ErrInactiveUser):
			return apiError(c, fiber.StatusForbidden, "account is inactive")
		default:
			handler.logger.Error().Err(err).Msg("login failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
		}
	}

	return handler.respondWithToken(c, user, fiber.StatusOK)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(mustCurrentUser(c))
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, user models.User, status int) error {
	token, err := handler.buildToken(user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create token")
	}
	return c.Status(status).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (handler *Handler) buildToken(user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func validateCredentials(request credentialsRequest) string {
	email := strings.TrimSpace(request.Email)
	if email == "" || !strings.Contains(email, "@") {
		return "a valid email is required"
	}
	if len(request.Password) < 8 {
		return "password must be at least 8 characters"
	}
	return ""
}
