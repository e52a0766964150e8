package sitemedia

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeHomeRepo struct {
	items map[string]HomeMediaItem
}

func (f *fakeHomeRepo) Insert(ctx context.Context, item HomeMediaItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeHomeRepo) Delete(ctx context.Context, id string) (HomeMediaItem, error) {
	item, ok := f.items[id]
	if !ok {
		return HomeMediaItem{}, mongo.ErrNoDocuments
	}
	delete(f.items, id)
	return item, nil
}

func (f *fakeHomeRepo) SetSortOrder(ctx context.Context, id string, sortOrder int) error {
	item, ok := f.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	item.SortOrder = sortOrder
	f.items[id] = item
	return nil
}

func (f *fakeHomeRepo) List(ctx context.Context) ([]HomeMediaItem, error) {
	out := make([]HomeMediaItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeCitiesRepo struct {
	slots map[string]CityMedia
}

func (f *fakeCitiesRepo) Upsert(ctx context.Context, item CityMedia) (CityMedia, error) {
	f.slots[item.City] = item
	return item, nil
}

func (f *fakeCitiesRepo) GetByCity(ctx context.Context, city string) (CityMedia, error) {
	item, ok := f.slots[city]
	if !ok {
		return CityMedia{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeCitiesRepo) List(ctx context.Context) ([]CityMedia, error) {
	out := make([]CityMedia, 0, len(f.slots))
	for _, item := range f.slots {
		out = append(out, item)
	}
	return out, nil
}

type fakeDestroyer struct {
	destroyed []string
}

func (f *fakeDestroyer) Destroy(ctx context.Context, resourceType, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func newTestService(destroyer *fakeDestroyer) *Service {
	home := &fakeHomeRepo{items: make(map[string]HomeMediaItem)}
	cities := &fakeCitiesRepo{slots: make(map[string]CityMedia)}
	return NewService(home, cities, destroyer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSetCityMediaRejectsUnknownSlot(t *testing.T) {
	svc := newTestService(&fakeDestroyer{})

	req := SetCityMediaRequest{MediaURL: "https://cdn.example.com/x.jpg", PublicID: "academy/cities_media/x"}
	if _, err := svc.SetCityMedia(context.Background(), "london", req); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func TestSetCityMediaNormalizesSlotName(t *testing.T) {
	svc := newTestService(&fakeDestroyer{})

	req := SetCityMediaRequest{MediaURL: "https://cdn.example.com/r.jpg", PublicID: "academy/cities_media/r"}
	item, err := svc.SetCityMedia(context.Background(), " Riyadh ", req)
	if err != nil {
		t.Fatalf("SetCityMedia error: %v", err)
	}
	if item.City != "riyadh" {
		t.Fatalf("unexpected slot %q", item.City)
	}
}

func TestSetCityMediaDestroysReplacedAsset(t *testing.T) {
	destroyer := &fakeDestroyer{}
	svc := newTestService(destroyer)

	first := SetCityMediaRequest{MediaURL: "https://cdn.example.com/1.jpg", PublicID: "academy/cities_media/1"}
	if _, err := svc.SetCityMedia(context.Background(), "jeddah", first); err != nil {
		t.Fatalf("SetCityMedia error: %v", err)
	}

	second := SetCityMediaRequest{MediaURL: "https://cdn.example.com/2.jpg", PublicID: "academy/cities_media/2"}
	if _, err := svc.SetCityMedia(context.Background(), "jeddah", second); err != nil {
		t.Fatalf("SetCityMedia error: %v", err)
	}

	if len(destroyer.destroyed) != 1 || destroyer.destroyed[0] != "academy/cities_media/1" {
		t.Fatalf("expected exactly one destroy of the replaced asset, got %v", destroyer.destroyed)
	}
}

func TestDeleteHomeMediaDestroysAsset(t *testing.T) {
	destroyer := &fakeDestroyer{}
	svc := newTestService(destroyer)

	item, err := svc.AddHomeMedia(context.Background(), AddHomeMediaRequest{
		MediaURL: "https://cdn.example.com/h.mp4",
		PublicID: "academy/home_media/h",
	})
	if err != nil {
		t.Fatalf("AddHomeMedia error: %v", err)
	}

	if err := svc.DeleteHomeMedia(context.Background(), item.ID); err != nil {
		t.Fatalf("DeleteHomeMedia error: %v", err)
	}
	if len(destroyer.destroyed) != 1 || destroyer.destroyed[0] != "academy/home_media/h" {
		t.Fatalf("expected one destroy keyed by the stored public id, got %v", destroyer.destroyed)
	}
}

func TestReorderHomeMedia(t *testing.T) {
	destroyer := &fakeDestroyer{}
	svc := newTestService(destroyer)

	a, _ := svc.AddHomeMedia(context.Background(), AddHomeMediaRequest{MediaURL: "https://cdn.example.com/a.jpg", PublicID: "a"})
	b, _ := svc.AddHomeMedia(context.Background(), AddHomeMediaRequest{MediaURL: "https://cdn.example.com/b.jpg", PublicID: "b"})

	if err := svc.ReorderHomeMedia(context.Background(), []string{b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderHomeMedia error: %v", err)
	}

	items, err := svc.ListHomeMedia(context.Background())
	if err != nil {
		t.Fatalf("ListHomeMedia error: %v", err)
	}
	for _, item := range items {
		if item.ID == b.ID && item.SortOrder != 0 {
			t.Fatalf("expected b first, got sort_order %d", item.SortOrder)
		}
		if item.ID == a.ID && item.SortOrder != 1 {
			t.Fatalf("expected a second, got sort_order %d", item.SortOrder)
		}
	}
}
