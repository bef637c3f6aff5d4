package ports

import (
	"context"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// RecordHandler — обработка одной прочитанной записи.
// Ошибка означает, что запись не обработана и её позиция не должна продвигаться.
type RecordHandler interface {
	HandleRecord(ctx context.Context, record domain.Record) error
}
