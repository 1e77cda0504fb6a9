package controllers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services"
	"lms/utils"
)

type AuthController struct {
	Auth     *services.AuthService
	validate *validator.Validate
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth, validate: validator.New()}
}

type CredentialsInput struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body CredentialsInput true "Credentials"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input CredentialsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Username and password are required")
	}

	userID, err := ac.Auth.Register(input.Username, input.Password)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return utils.BadRequest(c, "Username and password are required")
	case errors.Is(err, services.ErrDuplicateUsername):
		return utils.Conflict(c, "Username already taken")
	case err != nil:
		return utils.InternalServerError(c, "Could not create user")
	}

	token, err := ac.Auth.StartSession(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not start session")
	}
	ac.setSessionCookie(c, token)

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       userID,
			"username": input.Username,
		},
	})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body CredentialsInput true "Credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input CredentialsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	userID, err := ac.Auth.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	token, err := ac.Auth.StartSession(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not start session")
	}
	ac.setSessionCookie(c, token)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       userID,
			"username": input.Username,
		},
	})
}

// Logout ends the presented session. Logging out twice, or with a
// token that never existed, succeeds.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Auth.EndSession(middleware.TokenFromRequest(c)); err != nil {
		return utils.InternalServerError(c, "Could not end session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Logged out",
	})
}

func (ac *AuthController) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    token,
		Expires:  time.Now().Add(time.Duration(ac.Auth.Cfg.SessionTTLHours) * time.Hour),
		HTTPOnly: true,
	})
}
