package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("booking not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateRequest, score float64) (Booking, error) {
	item := Booking{
		ID:           primitive.NewObjectID().Hex(),
		Date:         req.Date,
		City:         strings.TrimSpace(req.City),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Viewed:       false,
		CaptchaScore: score,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Booking{}, err
	}
	return item, nil
}

func (s *Service) MarkViewed(ctx context.Context, id string) (Booking, error) {
	updated, err := s.repo.MarkViewed(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, int64, error) {
	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	unread := false
	return s.repo.Count(ctx, ListFilter{Viewed: &unread})
}
