package articles

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"academy-backend/internal/media"
	"academy-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("article not found")
	ErrDuplicate = errors.New("article slug already exists")
)

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

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Article, error) {
	now := time.Now().UTC()
	item := Article{
		ID:        primitive.NewObjectID().Hex(),
		TitleEn:   strings.TrimSpace(req.TitleEn),
		TitleAr:   strings.TrimSpace(req.TitleAr),
		ContentEn: req.ContentEn,
		ContentAr: req.ContentAr,
		Author:    strings.TrimSpace(req.Author),
		SlugEn:    utils.NormalizeSlug(req.SlugEn),
		SlugAr:    utils.NormalizeSlug(req.SlugAr),
		Cover:     req.Cover.asset(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.compensate(item.Cover)
		if mongo.IsDuplicateKeyError(err) {
			return Article{}, ErrDuplicate
		}
		return Article{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Article, error) {
	id = strings.TrimSpace(id)
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}

	newCover := req.Cover.asset()
	set := bson.M{
		"title_en":   strings.TrimSpace(req.TitleEn),
		"title_ar":   strings.TrimSpace(req.TitleAr),
		"content_en": req.ContentEn,
		"content_ar": req.ContentAr,
		"author":     strings.TrimSpace(req.Author),
		"slug_en":    utils.NormalizeSlug(req.SlugEn),
		"slug_ar":    utils.NormalizeSlug(req.SlugAr),
		"cover":      newCover,
		"updated_at": time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if replacesCover(current.Cover, newCover) {
			s.compensate(newCover)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Article{}, ErrDuplicate
		}
		return Article{}, err
	}

	if replacesCover(current.Cover, newCover) {
		s.destroy(current.Cover)
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
	s.destroy(deleted.Cover)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Article, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}
	return item, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Article, error) {
	item, err := s.repo.GetBySlug(ctx, utils.NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, limit, offset int64) ([]Article, int64, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// replacesCover reports whether the update swaps in a different asset, which
// means the previous one has to be removed from the media host.
func replacesCover(prev, next *media.Asset) bool {
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
		s.log.Warn("article media destroy failed",
			slog.String("public_id", asset.PublicID),
			slog.String("error", err.Error()))
	}
}

// compensate removes an asset that was uploaded for a write that never landed
// in the store, so failed saves do not leak hosted media.
func (s *Service) compensate(asset *media.Asset) {
	s.destroy(asset)
}
