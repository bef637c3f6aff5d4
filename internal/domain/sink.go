package domain

import "errors"

var (
	// ErrSinkRejected — хранилище отклонило одну или несколько строк.
	ErrSinkRejected = errors.New("sink rejected rows")
	// ErrSinkUnavailable — запись в хранилище не удалась целиком (соединение, таймаут).
	ErrSinkUnavailable = errors.New("sink unavailable")
)

// SinkResult — итог записи пачки в хранилище.
type SinkResult struct {
	HasError   bool
	ErrorCount int
	Written    int // реально вставленные строки (дубликаты не считаются)
}
