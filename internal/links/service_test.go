package links

import (
	"context"
	"testing"
)

type fakeRepo struct {
	stored *GeneralLinks
}

func (f *fakeRepo) Get(_ context.Context) (GeneralLinks, error) {
	if f.stored == nil {
		return GeneralLinks{}, nil
	}
	return *f.stored, nil
}

func (f *fakeRepo) Upsert(_ context.Context, item GeneralLinks) (GeneralLinks, error) {
	item.ID = singletonID
	f.stored = &item
	return item, nil
}

func TestGetBeforeFirstUpsertReturnsZeroValue(t *testing.T) {
	svc := NewService(&fakeRepo{})

	item, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Facebook != "" || item.TikTok != "" {
		t.Fatalf("expected zero value, got %+v", item)
	}
}

func TestUpsertTrimsAndOverwrites(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	first, err := svc.Upsert(context.Background(), UpsertRequest{
		Facebook: " https://facebook.com/academy ",
		LinkedIn: "https://www.linkedin.com/company/academy",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.Facebook != "https://facebook.com/academy" {
		t.Fatalf("facebook = %q, not trimmed", first.Facebook)
	}

	second, err := svc.Upsert(context.Background(), UpsertRequest{
		Twitter: "https://x.com/academy",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if second.Facebook != "" {
		t.Fatalf("facebook = %q, want cleared on full overwrite", second.Facebook)
	}
	if second.Twitter != "https://x.com/academy" {
		t.Fatalf("twitter = %q", second.Twitter)
	}

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Twitter != "https://x.com/academy" {
		t.Fatalf("stored twitter = %q", got.Twitter)
	}
}
