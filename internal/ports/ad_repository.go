package ports

import (
	"context"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// AdHistoryRepository — хранилище истории объявлений: запись пачками и запросы на чтение.
type AdHistoryRepository interface {
	SendBatch(ctx context.Context, ads []domain.Ad, positions []domain.LogPosition) (domain.SinkResult, error)

	// LatestByUUID — последнее состояние объявления; (nil, nil), если записей нет.
	LatestByUUID(ctx context.Context, uuid string) (*domain.AdHistoryEntry, error)
	HistoryByUUID(ctx context.Context, uuid string) ([]domain.AdHistoryEntry, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.AdHistoryEntry, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
