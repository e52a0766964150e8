package sitemedia

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"academy-backend/internal/media"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound    = errors.New("media item not found")
	ErrUnknownSlot = errors.New("unknown city slot")
)

type Service struct {
	home      HomeRepository
	cities    CitiesRepository
	destroyer media.Destroyer
	log       *slog.Logger
}

func NewService(home HomeRepository, cities CitiesRepository, destroyer media.Destroyer, log *slog.Logger) *Service {
	return &Service{
		home:      home,
		cities:    cities,
		destroyer: destroyer,
		log:       log,
	}
}

func (s *Service) AddHomeMedia(ctx context.Context, req AddHomeMediaRequest) (HomeMediaItem, error) {
	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	item := HomeMediaItem{
		ID:           primitive.NewObjectID().Hex(),
		MediaURL:     strings.TrimSpace(req.MediaURL),
		PublicID:     strings.TrimSpace(req.PublicID),
		ResourceType: req.ResourceType,
		SortOrder:    sortOrder,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.home.Insert(ctx, item); err != nil {
		s.destroy(item.ResourceType, item.PublicID)
		return HomeMediaItem{}, err
	}
	return item, nil
}

func (s *Service) DeleteHomeMedia(ctx context.Context, id string) error {
	deleted, err := s.home.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	s.destroy(deleted.ResourceType, deleted.PublicID)
	return nil
}

// ReorderHomeMedia rewrites sort_order to match the given id sequence.
func (s *Service) ReorderHomeMedia(ctx context.Context, ids []string) error {
	for pos, id := range ids {
		if err := s.home.SetSortOrder(ctx, strings.TrimSpace(id), pos); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (s *Service) ListHomeMedia(ctx context.Context) ([]HomeMediaItem, error) {
	return s.home.List(ctx)
}

func (s *Service) SetCityMedia(ctx context.Context, city string, req SetCityMediaRequest) (CityMedia, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	if !IsCitySlot(city) {
		return CityMedia{}, ErrUnknownSlot
	}

	previous, err := s.cities.GetByCity(ctx, city)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return CityMedia{}, err
	}

	item := CityMedia{
		City:         city,
		MediaURL:     strings.TrimSpace(req.MediaURL),
		PublicID:     strings.TrimSpace(req.PublicID),
		ResourceType: req.ResourceType,
		UpdatedAt:    time.Now().UTC(),
	}

	updated, err := s.cities.Upsert(ctx, item)
	if err != nil {
		s.destroy(item.ResourceType, item.PublicID)
		return CityMedia{}, err
	}

	if previous.PublicID != "" && previous.PublicID != item.PublicID {
		s.destroy(previous.ResourceType, previous.PublicID)
	}
	return updated, nil
}

func (s *Service) ListCityMedia(ctx context.Context) ([]CityMedia, error) {
	return s.cities.List(ctx)
}

func (s *Service) destroy(resourceType, publicID string) {
	if publicID == "" || s.destroyer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.destroyer.Destroy(ctx, resourceType, publicID); err != nil {
		s.log.Warn("site media destroy failed",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()))
	}
}
