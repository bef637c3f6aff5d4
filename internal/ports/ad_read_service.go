package ports

import (
	"context"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// AdReadService — сервис чтения сохранённой истории.
type AdReadService interface {
	LatestAd(ctx context.Context, uuid string) (*domain.AdHistoryEntry, error)
	AdHistory(ctx context.Context, uuid string) ([]domain.AdHistoryEntry, error)
	RecentChanges(ctx context.Context, limit, offset int) ([]domain.AdHistoryEntry, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}
