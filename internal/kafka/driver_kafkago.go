package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// reader — минимальный интерфейс kafka.Reader, нужный драйверу.
type reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Config() kafkago.ReaderConfig
	Close() error
}

var errClientClosed = errors.New("kafka-go: client closed")

// kafkaGoClient — LogClient поверх segmentio/kafka-go.
// Групповой Reader не умеет SetOffset, поэтому перемотка — это новый Reader:
// он вступает в группу и начинает с закоммиченных оффсетов.
type kafkaGoClient struct {
	open       func() reader
	linger     time.Duration
	maxRecords int

	mu     sync.Mutex
	reader reader
	closed bool

	// ошибка чтения, случившаяся после того, как часть пачки уже получена;
	// отдаётся следующим Poll
	pending error

	closeOnce sync.Once
	closeErr  error
}

func init() {
	Register(DriverKafkaGo, func(cfg *ConsumerConfig) (LogClient, error) {
		rc := cfg.ReaderConfig()
		open := func() reader { return kafkago.NewReader(rc) }
		return newKafkaGoClient(open, cfg.pollLinger(), cfg.maxPollRecords()), nil
	})
}

func newKafkaGoClient(open func() reader, linger time.Duration, maxRecords int) *kafkaGoClient {
	return &kafkaGoClient{open: open, reader: open(), linger: linger, maxRecords: maxRecords}
}

func (c *kafkaGoClient) current() reader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reader
}

// Poll — ждёт первую запись не дольше timeout, затем добирает пачку в течение linger.
// Истёкший таймаут без записей — пустой результат, а не ошибка.
func (c *kafkaGoClient) Poll(ctx context.Context, timeout time.Duration) ([]domain.Record, error) {
	if err := c.pending; err != nil {
		c.pending = nil
		return nil, err
	}

	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := c.current()
	msg, err := r.FetchMessage(pollCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, err
	}

	records := []domain.Record{recordFromKafkaGo(msg)}

	lingerCtx, cancelLinger := context.WithTimeout(ctx, c.linger)
	defer cancelLinger()

	for len(records) < c.maxRecords {
		msg, err := r.FetchMessage(lingerCtx)
		if err != nil {
			if lingerCtx.Err() == nil {
				c.pending = err
			}
			break
		}
		records = append(records, recordFromKafkaGo(msg))
	}
	return records, nil
}

// Commit — kafka-go коммитит msg.Offset+1, поэтому «следующий оффсет N» передаётся как N-1.
// Метаданные коммита kafka-go не поддерживает.
func (c *kafkaGoClient) Commit(ctx context.Context, offsets map[domain.TopicPartition]domain.CommitOffset) error {
	if len(offsets) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(offsets))
	for _, tp := range sortedPartitions(offsets) {
		msgs = append(msgs, kafkago.Message{
			Topic:     tp.Topic,
			Partition: int(tp.Partition),
			Offset:    offsets[tp].Offset - 1,
		})
	}
	return c.current().CommitMessages(ctx, msgs...)
}

// Rewind — заменяет Reader целиком, поэтому перечитываются все партиции клиента,
// а не только переданные. Для уже обработанных это лишь повтор с закоммиченного места.
func (c *kafkaGoClient) Rewind(ctx context.Context, partitions []domain.TopicPartition) error {
	if len(partitions) == 0 {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClientClosed
	}
	old := c.reader
	c.reader = c.open()
	c.pending = nil
	c.mu.Unlock()

	// выход из группы может занять время — ждём не дольше контекста
	done := make(chan error, 1)
	go func() { done <- old.Close() }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close rewound reader: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *kafkaGoClient) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		r := c.reader
		c.mu.Unlock()
		c.closeErr = r.Close()
	})
	return c.closeErr
}

func recordFromKafkaGo(msg kafkago.Message) domain.Record {
	return domain.Record{
		Key:       string(msg.Key),
		Value:     msg.Value,
		Timestamp: msg.Time,
		Position: domain.LogPosition{
			Topic:     msg.Topic,
			Partition: int32(msg.Partition),
			Offset:    msg.Offset,
		},
	}
}
