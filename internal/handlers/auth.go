package handlers

import (
	"log"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	store repositories.Store
}

func NewAuthHandler(store repositories.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// Login authenticates by email and password and returns a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}

	user, err := h.store.GetUserByEmail(c.Context(), input.Email)
	if err != nil {
		if errs.IsNotFound(err) {
			return utils.Unauthorized(c, "invalid email or password")
		}
		log.Printf("login lookup failed: %v", err)
		return utils.InternalError(c, "authentication failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "invalid email or password")
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		return utils.InternalError(c, "authentication failed")
	}

	return utils.Success(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Register creates a user account with a hashed password.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("password hashing failed: %v", err)
		return utils.InternalError(c, "registration failed")
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := h.store.CreateUser(c.Context(), user); err != nil {
		log.Printf("user creation failed: %v", err)
		return utils.Conflict(c, "email or phone already registered")
	}

	return utils.Created(c, fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
