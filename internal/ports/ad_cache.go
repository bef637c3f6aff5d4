package ports

import (
	"context"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// AdCache — кэш последнего состояния объявлений.
// Требования к реализации: потокобезопасность; возврат копий сущности.
type AdCache interface {
	Get(ctx context.Context, uuid string) (*domain.AdHistoryEntry, bool)
	Set(ctx context.Context, entry *domain.AdHistoryEntry) error
	// Delete — инвалидация после записи новой версии.
	Delete(ctx context.Context, uuid string)
}
