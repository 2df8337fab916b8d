package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/services"
)

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func userResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	token, u, err := svc.Auth.Login(requestCtx(c), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "user": userResponse(u)})
}

func ListUsers(c *fiber.Ctx) error {
	users, err := svc.Auth.ListUsers(requestCtx(c))
	if err != nil {
		return fail(c, err)
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = userResponse(u)
	}
	return c.JSON(out)
}

func CreateUser(c *fiber.Ctx) error {
	var req services.UserInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	u, err := svc.Auth.CreateUser(requestCtx(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(u))
}
