package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/IBM/sarama"
)

var errNoSession = errors.New("sarama: no active consumer group session")

// consumerGroup — подмножество sarama.ConsumerGroup, нужное драйверу.
type consumerGroup interface {
	Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Errors() <-chan error
	Close() error
}

// offsetFetcher — чтение закоммиченных оффсетов группы (sarama.ClusterAdmin).
type offsetFetcher interface {
	ListConsumerGroupOffsets(group string, topicPartitions map[string][]int32) (*sarama.OffsetFetchResponse, error)
}

// saramaClient — LogClient поверх IBM/sarama ConsumerGroup.
// Сессия группы крутится в фоновой горутине, записи передаются в Poll через канал.
type saramaClient struct {
	group      consumerGroup
	offsets    offsetFetcher
	groupID    string
	topic      string
	linger     time.Duration
	maxRecords int
	rejoinWait time.Duration
	// сколько ждать асинхронную ошибку после неудачного коммита
	commitErrWait time.Duration

	msgs chan *sarama.ConsumerMessage
	errs chan error

	mu   sync.Mutex
	sess sarama.ConsumerGroupSession
	// endSession завершает текущий Consume; sessionEnded закрывается, когда он вернулся
	endSession   context.CancelFunc
	sessionEnded chan struct{}

	// закрывает общий sarama.Client после группы
	closeClient func() error

	startOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}

	closeOnce sync.Once
	closeErr  error
}

func init() {
	Register(DriverSarama, func(cfg *ConsumerConfig) (LogClient, error) {
		sc, err := cfg.SaramaConfig()
		if err != nil {
			return nil, err
		}
		client, err := sarama.NewClient(cfg.Brokers, sc)
		if err != nil {
			return nil, fmt.Errorf("sarama client: %w", err)
		}
		group, err := sarama.NewConsumerGroupFromClient(cfg.GroupID, client)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("sarama consumer group: %w", err)
		}
		// admin не закрываем: его Close закрыл бы общий client раньше группы
		admin, err := sarama.NewClusterAdminFromClient(client)
		if err != nil {
			_ = group.Close()
			_ = client.Close()
			return nil, fmt.Errorf("sarama cluster admin: %w", err)
		}
		c := newSaramaClient(group, admin, cfg.GroupID, cfg.Topic, cfg.pollLinger(), cfg.maxPollRecords())
		c.closeClient = client.Close
		return c, nil
	})
}

func newSaramaClient(group consumerGroup, offsets offsetFetcher, groupID, topic string, linger time.Duration, maxRecords int) *saramaClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &saramaClient{
		group:         group,
		offsets:       offsets,
		groupID:       groupID,
		topic:         topic,
		linger:        linger,
		maxRecords:    maxRecords,
		rejoinWait:    time.Second,
		commitErrWait: 100 * time.Millisecond,
		msgs:          make(chan *sarama.ConsumerMessage),
		errs:          make(chan error, 16),
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}
}

// start — запуск сессии группы при первом Poll.
func (c *saramaClient) start() {
	c.startOnce.Do(func() {
		go c.forwardErrors()
		go c.consume()
	})
}

func (c *saramaClient) consume() {
	defer close(c.done)
	for {
		sessCtx, endSession := context.WithCancel(c.ctx)
		ended := make(chan struct{})
		c.mu.Lock()
		c.endSession, c.sessionEnded = endSession, ended
		c.mu.Unlock()

		// Consume возвращается при ребалансе и при Rewind; переподключаемся, пока клиент не закрыт.
		err := c.group.Consume(sessCtx, []string{c.topic}, c)
		endSession()
		close(ended)
		if err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			c.pushErr(err)
			select {
			case <-c.ctx.Done():
				return
			case <-time.After(c.rejoinWait):
			}
		}
		if c.ctx.Err() != nil {
			return
		}
	}
}

func (c *saramaClient) forwardErrors() {
	errs := c.group.Errors()
	for {
		select {
		case <-c.ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			c.pushErr(err)
		}
	}
}

// pushErr — без блокировки: при переполнении последние ошибки теряются, первая уже дошла до цикла.
func (c *saramaClient) pushErr(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

// Setup — начало сессии группы (sarama.ConsumerGroupHandler).
func (c *saramaClient) Setup(sess sarama.ConsumerGroupSession) error {
	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()
	return nil
}

// Cleanup — конец сессии группы.
func (c *saramaClient) Cleanup(sarama.ConsumerGroupSession) error {
	c.mu.Lock()
	c.sess = nil
	c.mu.Unlock()
	return nil
}

// ConsumeClaim — перекладывает сообщения партиции в общий канал.
func (c *saramaClient) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-sess.Context().Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			select {
			case c.msgs <- msg:
			case <-sess.Context().Done():
				return nil
			}
		}
	}
}

// Poll — та же схема, что у kafka-go драйвера: ждём первую запись до timeout, добираем в течение linger.
func (c *saramaClient) Poll(ctx context.Context, timeout time.Duration) ([]domain.Record, error) {
	c.start()

	select {
	case err := <-c.errs:
		return nil, err
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var records []domain.Record
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-c.errs:
		return nil, err
	case <-timer.C:
		return nil, nil
	case msg := <-c.msgs:
		records = append(records, recordFromSarama(msg))
	}

	linger := time.NewTimer(c.linger)
	defer linger.Stop()

	for len(records) < c.maxRecords {
		select {
		case <-ctx.Done():
			return records, nil
		case <-linger.C:
			return records, nil
		case msg := <-c.msgs:
			records = append(records, recordFromSarama(msg))
		}
	}
	return records, nil
}

// Commit — выставляет оффсеты партиций ровно в переданные значения и коммитит.
// MarkOffset только поднимает оффсет, ResetOffset только опускает — вместе дают точное значение.
// sarama сообщает об ошибках коммита асинхронно, поэтому результат сверяется с брокером;
// весь вызов ограничен ctx.
func (c *saramaClient) Commit(ctx context.Context, offsets map[domain.TopicPartition]domain.CommitOffset) error {
	if len(offsets) == 0 {
		return nil
	}

	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()
	if sess == nil {
		return &Fault{Kind: FaultTransport, Err: errNoSession}
	}

	for _, tp := range sortedPartitions(offsets) {
		co := offsets[tp]
		meta, err := json.Marshal(co.Metadata)
		if err != nil {
			return fmt.Errorf("encode commit metadata: %w", err)
		}
		sess.MarkOffset(tp.Topic, tp.Partition, co.Offset, string(meta))
		sess.ResetOffset(tp.Topic, tp.Partition, co.Offset, string(meta))
	}

	type result struct {
		resp *sarama.OffsetFetchResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		sess.Commit()
		resp, err := c.offsets.ListConsumerGroupOffsets(c.groupID, partitionsByTopic(offsets))
		done <- result{resp: resp, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return fmt.Errorf("commit not confirmed: %w", ctx.Err())
	case res = <-done:
	}
	if res.err != nil {
		return fmt.Errorf("fetch committed offsets: %w", res.err)
	}
	if res.resp.Err != sarama.ErrNoError {
		return fmt.Errorf("fetch committed offsets: %w", res.resp.Err)
	}

	for _, tp := range sortedPartitions(offsets) {
		want := offsets[tp].Offset
		block := res.resp.GetBlock(tp.Topic, tp.Partition)
		switch {
		case block == nil:
			return &Fault{Kind: FaultTransport, Err: fmt.Errorf("no committed offset returned for %s/%d", tp.Topic, tp.Partition)}
		case block.Err != sarama.ErrNoError:
			return fmt.Errorf("committed offset %s/%d: %w", tp.Topic, tp.Partition, block.Err)
		case block.Offset != want:
			if err := c.commitError(ctx, offsets); err != nil {
				return err
			}
			return &Fault{Kind: FaultTransport, Err: fmt.Errorf("commit %s/%d not applied: broker has %d, want %d",
				tp.Topic, tp.Partition, block.Offset, want)}
		}
	}
	return nil
}

// commitError — ждёт асинхронную ошибку по одной из закоммиченных партиций,
// чтобы она не всплыла позже как сбой poll. Чужие ошибки возвращаются в очередь.
func (c *saramaClient) commitError(ctx context.Context, offsets map[domain.TopicPartition]domain.CommitOffset) error {
	timer := time.NewTimer(c.commitErrWait)
	defer timer.Stop()

	var other []error
	defer func() {
		for _, err := range other {
			c.pushErr(err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return nil
		case err := <-c.errs:
			var ce *sarama.ConsumerError
			if errors.As(err, &ce) {
				if _, ok := offsets[domain.TopicPartition{Topic: ce.Topic, Partition: ce.Partition}]; ok {
					return err
				}
			}
			other = append(other, err)
		}
	}
}

// Rewind — завершает текущую сессию группы; следующая начинает claim с закоммиченного
// оффсета. Перечитываются все партиции сессии. Канал сообщений небуферизован,
// так что прочитанное из старой сессии в Poll не попадёт.
func (c *saramaClient) Rewind(ctx context.Context, partitions []domain.TopicPartition) error {
	if len(partitions) == 0 {
		return nil
	}

	c.mu.Lock()
	end, ended := c.endSession, c.sessionEnded
	c.mu.Unlock()
	if end == nil {
		// сессия ещё не начиналась
		return nil
	}

	end()
	select {
	case <-ended:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for session end: %w", ctx.Err())
	}
}

func (c *saramaClient) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.closeErr = c.group.Close()
		if c.closeClient != nil {
			if err := c.closeClient(); err != nil && c.closeErr == nil {
				c.closeErr = err
			}
		}
	})
	return c.closeErr
}

func partitionsByTopic(offsets map[domain.TopicPartition]domain.CommitOffset) map[string][]int32 {
	out := make(map[string][]int32)
	for _, tp := range sortedPartitions(offsets) {
		out[tp.Topic] = append(out[tp.Topic], tp.Partition)
	}
	return out
}

func recordFromSarama(msg *sarama.ConsumerMessage) domain.Record {
	return domain.Record{
		Key:       string(msg.Key),
		Value:     msg.Value,
		Timestamp: msg.Timestamp,
		Position: domain.LogPosition{
			Topic:     msg.Topic,
			Partition: msg.Partition,
			Offset:    msg.Offset,
		},
	}
}
