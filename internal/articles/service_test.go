package articles

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"academy-backend/internal/media"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items     map[string]Article
	createErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Article)}
}

func (f *fakeRepo) Create(ctx context.Context, item Article) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Article, error) {
	if f.updateErr != nil {
		return Article{}, f.updateErr
	}
	item, ok := f.items[id]
	if !ok {
		return Article{}, mongo.ErrNoDocuments
	}
	if cover, ok := set["cover"]; ok {
		asset, _ := cover.(*media.Asset)
		item.Cover = asset
	}
	if slug, ok := set["slug_en"].(string); ok {
		item.SlugEn = slug
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (Article, error) {
	item, ok := f.items[id]
	if !ok {
		return Article{}, mongo.ErrNoDocuments
	}
	delete(f.items, id)
	return item, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Article, error) {
	item, ok := f.items[id]
	if !ok {
		return Article{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Article, error) {
	for _, item := range f.items {
		if item.SlugEn == slug || item.SlugAr == slug {
			return item, nil
		}
	}
	return Article{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int64) ([]Article, error) {
	out := make([]Article, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeDestroyer struct {
	destroyed []string
}

func (f *fakeDestroyer) Destroy(ctx context.Context, resourceType, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRequest() UpsertRequest {
	return UpsertRequest{
		TitleEn:   "Why certifications matter",
		TitleAr:   "لماذا تهم الشهادات",
		ContentEn: "body en",
		ContentAr: "body ar",
		Author:    "Sara",
		SlugEn:    "why-certifications-matter",
		SlugAr:    "لماذا-تهم-الشهادات",
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeDestroyer{}, discardLogger())

	item, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestCreateCompensatesUploadedCoverOnStoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("write failed")
	destroyer := &fakeDestroyer{}
	svc := NewService(repo, destroyer, discardLogger())

	req := validRequest()
	req.Cover = &AssetInput{URL: "https://cdn.example.com/a.jpg", PublicID: "academy/articles/a"}

	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatalf("expected create error")
	}
	if len(destroyer.destroyed) != 1 || destroyer.destroyed[0] != "academy/articles/a" {
		t.Fatalf("expected orphaned cover to be destroyed, got %v", destroyer.destroyed)
	}
}

func TestUpdateDestroysReplacedCover(t *testing.T) {
	repo := newFakeRepo()
	destroyer := &fakeDestroyer{}
	svc := NewService(repo, destroyer, discardLogger())

	req := validRequest()
	req.Cover = &AssetInput{URL: "https://cdn.example.com/old.jpg", PublicID: "academy/articles/old"}
	item, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	req.Cover = &AssetInput{URL: "https://cdn.example.com/new.jpg", PublicID: "academy/articles/new"}
	if _, err := svc.Update(context.Background(), item.ID, req); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(destroyer.destroyed) != 1 || destroyer.destroyed[0] != "academy/articles/old" {
		t.Fatalf("expected exactly one destroy of the old cover, got %v", destroyer.destroyed)
	}
}

func TestUpdateKeepsUnchangedCover(t *testing.T) {
	repo := newFakeRepo()
	destroyer := &fakeDestroyer{}
	svc := NewService(repo, destroyer, discardLogger())

	req := validRequest()
	req.Cover = &AssetInput{URL: "https://cdn.example.com/same.jpg", PublicID: "academy/articles/same"}
	item, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Update(context.Background(), item.ID, req); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(destroyer.destroyed) != 0 {
		t.Fatalf("unchanged cover must not be destroyed, got %v", destroyer.destroyed)
	}
}

func TestDeleteDestroysCoverOnce(t *testing.T) {
	repo := newFakeRepo()
	destroyer := &fakeDestroyer{}
	svc := NewService(repo, destroyer, discardLogger())

	req := validRequest()
	req.Cover = &AssetInput{URL: "https://cdn.example.com/c.jpg", PublicID: "academy/articles/c"}
	item, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(destroyer.destroyed) != 1 || destroyer.destroyed[0] != "academy/articles/c" {
		t.Fatalf("expected exactly one destroy keyed by the stored public id, got %v", destroyer.destroyed)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeDestroyer{}, discardLogger())
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetBySlugNormalizesInput(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeDestroyer{}, discardLogger())

	req := validRequest()
	req.SlugEn = "paris-event"
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	item, err := svc.GetBySlug(context.Background(), "Paris-Event ")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if item.SlugEn != "paris-event" {
		t.Fatalf("unexpected slug %q", item.SlugEn)
	}
}
