package links

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (GeneralLinks, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (GeneralLinks, error) {
	item := GeneralLinks{
		Facebook:  strings.TrimSpace(req.Facebook),
		Twitter:   strings.TrimSpace(req.Twitter),
		Instagram: strings.TrimSpace(req.Instagram),
		LinkedIn:  strings.TrimSpace(req.LinkedIn),
		YouTube:   strings.TrimSpace(req.YouTube),
		WhatsApp:  strings.TrimSpace(req.WhatsApp),
		Telegram:  strings.TrimSpace(req.Telegram),
		Snapchat:  strings.TrimSpace(req.Snapchat),
		TikTok:    strings.TrimSpace(req.TikTok),
		UpdatedAt: time.Now().UTC(),
	}
	return s.repo.Upsert(ctx, item)
}
