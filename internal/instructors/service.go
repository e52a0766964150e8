package instructors

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"academy-backend/internal/media"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("instructor not found")

type Service struct {
	repo      Repository
	destroyer media.Destroyer
	log       *slog.Logger
}

func NewService(repo Repository, destroyer media.Destroyer, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		destroyer: destroyer,
		log:       log,
	}
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Instructor, error) {
	now := time.Now().UTC()
	item := Instructor{
		ID:           primitive.NewObjectID().Hex(),
		NameEn:       strings.TrimSpace(req.NameEn),
		NameAr:       strings.TrimSpace(req.NameAr),
		ExperienceEn: req.ExperienceEn,
		ExperienceAr: req.ExperienceAr,
		LinkedInURL:  strings.TrimSpace(req.LinkedInURL),
		Photo:        req.Photo.asset(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.destroy(item.Photo)
		return Instructor{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Instructor, error) {
	id = strings.TrimSpace(id)
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Instructor{}, ErrNotFound
		}
		return Instructor{}, err
	}

	newPhoto := req.Photo.asset()
	set := bson.M{
		"name_en":       strings.TrimSpace(req.NameEn),
		"name_ar":       strings.TrimSpace(req.NameAr),
		"experience_en": req.ExperienceEn,
		"experience_ar": req.ExperienceAr,
		"linkedin_url":  strings.TrimSpace(req.LinkedInURL),
		"photo":         newPhoto,
		"updated_at":    time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if replacesPhoto(current.Photo, newPhoto) {
			s.destroy(newPhoto)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Instructor{}, ErrNotFound
		}
		return Instructor{}, err
	}

	if replacesPhoto(current.Photo, newPhoto) {
		s.destroy(current.Photo)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	s.destroy(deleted.Photo)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Instructor, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Instructor{}, ErrNotFound
		}
		return Instructor{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]Instructor, error) {
	return s.repo.List(ctx)
}

// Exists lets the courses service validate trainer references.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, strings.TrimSpace(id))
}

func replacesPhoto(prev, next *media.Asset) bool {
	if prev == nil {
		return next != nil
	}
	if next == nil {
		return true
	}
	return prev.PublicID != next.PublicID
}

func (s *Service) destroy(asset *media.Asset) {
	if asset == nil || s.destroyer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.destroyer.Destroy(ctx, asset.ResourceType, asset.PublicID); err != nil {
		s.log.Warn("instructor media destroy failed",
			slog.String("public_id", asset.PublicID),
			slog.String("error", err.Error()))
	}
}
