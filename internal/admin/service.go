package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"academy-backend/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrDuplicate          = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// HasUsers reports whether any admin account exists; the first registration
// is open, every later one requires an authenticated admin.
func (s *Service) HasUsers(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           primitive.NewObjectID().Hex(),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         "admin",
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
