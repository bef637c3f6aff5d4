//go:generate mockgen -source=client.go -destination=./mocks/mock_log_client.go -package=mocks

package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// LogClient — транспорт к партиционированному логу.
type LogClient interface {
	// Poll — ждёт записи не дольше timeout. Пустой результат без ошибки — не сбой.
	Poll(ctx context.Context, timeout time.Duration) ([]domain.Record, error)
	// Commit — фиксирует следующий оффсет для чтения по каждой партиции одним вызовом.
	Commit(ctx context.Context, offsets map[domain.TopicPartition]domain.CommitOffset) error
	// Rewind — следующий Poll читает эти партиции заново с закоммиченного оффсета;
	// уже полученные, но не отданные записи отбрасываются.
	Rewind(ctx context.Context, partitions []domain.TopicPartition) error
	// Close — освобождает соединение; повторный вызов безопасен.
	Close() error
}

// Имена драйверов.
const (
	DriverKafkaGo = "kafkago"
	DriverSarama  = "sarama"
)

// Factory — строит LogClient по конфигурации.
type Factory func(cfg *ConsumerConfig) (LogClient, error)

var registry = map[string]Factory{}

// Register вызывается из init() каждого драйвера.
func Register(name string, f Factory) {
	registry[name] = f
}

// NewLogClient — возвращает клиент выбранного драйвера (по умолчанию kafkago).
func NewLogClient(cfg *ConsumerConfig) (LogClient, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if name == "" {
		name = DriverKafkaGo
	}
	if f, ok := registry[name]; ok {
		return f(cfg)
	}
	return nil, fmt.Errorf("kafka: unsupported driver %q", cfg.Driver)
}
