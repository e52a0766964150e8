package courses

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
	ErrNotFound       = errors.New("course not found")
	ErrDuplicate      = errors.New("course slug already exists")
	ErrUnknownTrainer = errors.New("unknown trainer")
)

// TrainerDirectory answers whether an instructor id exists; courses refuse
// to reference trainers that were never created.
type TrainerDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo      Repository
	trainers  TrainerDirectory
	destroyer media.Destroyer
	log       *slog.Logger
}

func NewService(repo Repository, trainers TrainerDirectory, destroyer media.Destroyer, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		trainers:  trainers,
		destroyer: destroyer,
		log:       log,
	}
}

func (s *Service) checkTrainer(ctx context.Context, id string) error {
	ok, err := s.trainers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownTrainer
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Course, error) {
	if err := s.checkTrainer(ctx, req.TrainerID); err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	item := Course{
		ID:            primitive.NewObjectID().Hex(),
		NameEn:        strings.TrimSpace(req.NameEn),
		NameAr:        strings.TrimSpace(req.NameAr),
		SlugEn:        utils.NormalizeSlug(req.SlugEn),
		SlugAr:        utils.NormalizeSlug(req.SlugAr),
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		TrainerID:     req.TrainerID,
		Image:         req.Image.asset(),
		Price:         req.Price,
		Currency:      currency,
		DurationDays:  req.DurationDays,
		City:          strings.TrimSpace(req.City),
		StartDate:     req.StartDate,
		Category:      strings.TrimSpace(req.Category),
		Featured:      req.Featured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.destroy(item.Image)
		if mongo.IsDuplicateKeyError(err) {
			return Course{}, ErrDuplicate
		}
		return Course{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Course, error) {
	id = strings.TrimSpace(id)
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}

	if err := s.checkTrainer(ctx, req.TrainerID); err != nil {
		return Course{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	newImage := req.Image.asset()
	set := bson.M{
		"name_en":        strings.TrimSpace(req.NameEn),
		"name_ar":        strings.TrimSpace(req.NameAr),
		"slug_en":        utils.NormalizeSlug(req.SlugEn),
		"slug_ar":        utils.NormalizeSlug(req.SlugAr),
		"description_en": req.DescriptionEn,
		"description_ar": req.DescriptionAr,
		"trainer_id":     req.TrainerID,
		"image":          newImage,
		"price":          req.Price,
		"currency":       currency,
		"duration_days":  req.DurationDays,
		"city":           strings.TrimSpace(req.City),
		"start_date":     req.StartDate,
		"category":       strings.TrimSpace(req.Category),
		"featured":       req.Featured,
		"updated_at":     time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if replacesImage(current.Image, newImage) {
			s.destroy(newImage)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Course{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Course{}, ErrDuplicate
		}
		return Course{}, err
	}

	if replacesImage(current.Image, newImage) {
		s.destroy(current.Image)
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
	s.destroy(deleted.Image)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Course, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	return item, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Course, error) {
	item, err := s.repo.GetBySlug(ctx, utils.NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Course, int64, error) {
	filter.Category = strings.TrimSpace(filter.Category)
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

func replacesImage(prev, next *media.Asset) bool {
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
		s.log.Warn("course media destroy failed",
			slog.String("public_id", asset.PublicID),
			slog.String("error", err.Error()))
	}
}
