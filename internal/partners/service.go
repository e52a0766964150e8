package partners

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

var (
	ErrNotFound  = errors.New("partner not found")
	ErrDuplicate = errors.New("partner already exists")
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

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Partner, error) {
	now := time.Now().UTC()
	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	item := Partner{
		ID:        primitive.NewObjectID().Hex(),
		NameEn:    strings.TrimSpace(req.NameEn),
		NameAr:    strings.TrimSpace(req.NameAr),
		Logo:      req.Logo.asset(),
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if !duplicateLogoKey(err) {
			s.destroy(item.Logo)
		}
		if mongo.IsDuplicateKeyError(err) {
			return Partner{}, ErrDuplicate
		}
		return Partner{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Partner, error) {
	id = strings.TrimSpace(id)
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Partner{}, ErrNotFound
		}
		return Partner{}, err
	}

	sortOrder := current.SortOrder
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	newLogo := req.Logo.asset()
	set := bson.M{
		"name_en":    strings.TrimSpace(req.NameEn),
		"name_ar":    strings.TrimSpace(req.NameAr),
		"logo":       newLogo,
		"sort_order": sortOrder,
		"updated_at": time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if replacesLogo(current.Logo, newLogo) && !duplicateLogoKey(err) {
			s.destroy(newLogo)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Partner{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Partner{}, ErrDuplicate
		}
		return Partner{}, err
	}

	if replacesLogo(current.Logo, newLogo) {
		s.destroy(current.Logo)
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
	s.destroy(deleted.Logo)
	return nil
}

func (s *Service) List(ctx context.Context) ([]Partner, error) {
	return s.repo.List(ctx)
}

// duplicateLogoKey reports whether a duplicate-key error fired on the logo
// index. In that case the asset already belongs to another document, so the
// failed write must not destroy it.
func duplicateLogoKey(err error) bool {
	if !mongo.IsDuplicateKeyError(err) {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "logo.public_id") {
				return true
			}
		}
	}
	return false
}

func replacesLogo(prev, next *media.Asset) bool {
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
		s.log.Warn("partner logo destroy failed",
			slog.String("public_id", asset.PublicID),
			slog.String("error", err.Error()))
	}
}
