package courses

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Course
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Course)}
}

func (f *fakeRepo) Create(ctx context.Context, item Course) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Course, error) {
	item, ok := f.items[id]
	if !ok {
		return Course{}, mongo.ErrNoDocuments
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (Course, error) {
	item, ok := f.items[id]
	if !ok {
		return Course{}, mongo.ErrNoDocuments
	}
	delete(f.items, id)
	return item, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Course, error) {
	item, ok := f.items[id]
	if !ok {
		return Course{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Course, error) {
	for _, item := range f.items {
		if item.SlugEn == slug || item.SlugAr == slug {
			return item, nil
		}
	}
	return Course{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Course, error) {
	out := make([]Course, 0, len(f.items))
	for _, item := range f.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) Count(ctx context.Context, filter ListFilter) (int64, error) {
	items, _ := f.List(ctx, filter, 0, 0)
	return int64(len(items)), nil
}

type fakeTrainers struct {
	known map[string]bool
}

func (f *fakeTrainers) Exists(ctx context.Context, id string) (bool, error) {
	return f.known[id], nil
}

type noopDestroyer struct{}

func (noopDestroyer) Destroy(ctx context.Context, resourceType, publicID string) error {
	return nil
}

const trainerID = "64b8f0f0f0f0f0f0f0f0f0f0"

func newTestService(repo *fakeRepo) *Service {
	trainers := &fakeTrainers{known: map[string]bool{trainerID: true}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, trainers, noopDestroyer{}, log)
}

func validRequest() UpsertRequest {
	return UpsertRequest{
		NameEn:        "PMP Preparation",
		NameAr:        "التحضير لشهادة PMP",
		SlugEn:        "pmp-preparation",
		SlugAr:        "التحضير-pmp",
		DescriptionEn: "desc en",
		DescriptionAr: "desc ar",
		TrainerID:     trainerID,
		Price:         1200,
		City:          "Riyadh",
		Category:      "management",
	}
}

func TestCreateRejectsUnknownTrainer(t *testing.T) {
	svc := newTestService(newFakeRepo())
	req := validRequest()
	req.TrainerID = "64b8f0f0f0f0f0f0f0f0dead"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrUnknownTrainer) {
		t.Fatalf("expected ErrUnknownTrainer, got %v", err)
	}
}

func TestCreateDefaultsCurrency(t *testing.T) {
	svc := newTestService(newFakeRepo())

	item, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", item.Currency)
	}
	if item.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
}

func TestGetBySlugMatchesEitherLocale(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	if _, err := svc.Create(context.Background(), validRequest()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	item, err := svc.GetBySlug(context.Background(), "PMP-Preparation ")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if item.SlugEn != "pmp-preparation" {
		t.Fatalf("unexpected slug %q", item.SlugEn)
	}

	if _, err := svc.GetBySlug(context.Background(), "التحضير-pmp"); err != nil {
		t.Fatalf("GetBySlug arabic error: %v", err)
	}
}

func TestGetBySlugMissing(t *testing.T) {
	svc := newTestService(newFakeRepo())
	if _, err := svc.GetBySlug(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())
	if _, err := svc.Update(context.Background(), "missing", validRequest()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
