package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

const tokenTTL = 72 * time.Hour

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	store    *store.Store
	activity *ActivityService
	secret   []byte
}

type UserInput struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin operator"`
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (models.User, error) {
	rows, err := s.store.Users.Search(ctx, store.Query{
		Filters: map[string]any{"email": strings.ToLower(strings.TrimSpace(email))},
		Limit:   1,
	})
	if err != nil {
		return models.User{}, err
	}
	if len(rows) == 0 {
		return models.User{}, store.ErrNotFound
	}
	return rows[0], nil
}

// Login checks the credentials and returns a signed HS256 token carrying
// user_id, role and exp claims.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.findByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, err
	}
	if !u.IsActive {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"exp":     now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(s.secret)
	if err != nil {
		return "", models.User{}, err
	}
	s.activity.Log(WithActor(ctx, u.ID), "login", "user", u.ID.String(), "")
	return t, u, nil
}

func (s *AuthService) CreateUser(ctx context.Context, in UserInput) (models.User, error) {
	if err := validateStruct(in); err != nil {
		return models.User{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		ID:        uuid.New(),
		FullName:  in.FullName,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  string(hashed),
		Role:      in.Role,
		IsActive:  true,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	if u.Role == "" {
		u.Role = models.RoleOperator
	}
	if err := s.store.Users.Insert(ctx, u); err != nil {
		return models.User{}, err
	}
	s.activity.Log(ctx, "create", "user", u.ID.String(), u.Email)
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users.GetAll(ctx)
}

// SeedAdmin creates the administrator account unless the email is taken.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password, fullName string) error {
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if _, err := s.findByEmail(ctx, email); err == nil {
		log.Println("Admin user already exists.")
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if fullName == "" {
		fullName = "Administrator"
	}
	if _, err := s.CreateUser(ctx, UserInput{FullName: fullName, Email: email, Password: password, Role: models.RoleAdmin}); err != nil {
		return err
	}
	log.Println("✅ Admin user seeded successfully")
	return nil
}
