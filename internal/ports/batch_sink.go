package ports

import (
	"context"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// BatchSink — надёжная запись пачки объявлений вместе с их позициями в логе.
// Повторная запись той же пачки не должна портить данные (идемпотентность по позиции).
type BatchSink interface {
	SendBatch(ctx context.Context, ads []domain.Ad, positions []domain.LogPosition) (domain.SinkResult, error)
}
