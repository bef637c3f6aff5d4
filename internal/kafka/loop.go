package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/ports"
	"github.com/Gunvolt24/adbridge/pkg/ctxmeta"
	"github.com/Gunvolt24/adbridge/pkg/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Проверка, что Loop удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Loop)(nil)

// ErrUnhealthy — цикл остановлен, потому что процесс признан нездоровым.
var ErrUnhealthy = errors.New("kafka consumer stopped: process is unhealthy")

var tracer = otel.Tracer("github.com/Gunvolt24/adbridge/internal/kafka")

// State — состояние цикла.
type State int32

const (
	StatePolling State = iota
	StateDispatching
	StateCommitting
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateDispatching:
		return "dispatching"
	case StateCommitting:
		return "committing"
	default:
		return "stopped"
	}
}

// LoopOptions — параметры цикла; нулевые значения заменяются дефолтами.
type LoopOptions struct {
	Name           string // для логов, обычно имя топика
	InstanceID     string
	PollTimeout    time.Duration
	ProcessTimeout time.Duration
	CommitTimeout  time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// Loop — цикл poll → dispatch → commit поверх LogClient.
// Один Loop — одна горутина; параллелизма внутри цикла нет.
type Loop struct {
	client  LogClient
	handler ports.RecordHandler
	gate    ports.HealthGate
	log     ports.Logger

	name           string
	instanceID     string
	pollTimeout    time.Duration
	processTimeout time.Duration
	commitTimeout  time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration

	now        func() time.Time
	jitterRand *rand.Rand
	state      atomic.Int32

	closeOnce sync.Once
	closeErr  error
}

// NewConsumer — собирает клиент выбранного драйвера и цикл над ним.
func NewConsumer(cfg *ConsumerConfig, handler ports.RecordHandler, gate ports.HealthGate, log ports.Logger) (*Loop, error) {
	client, err := NewLogClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create log client topic=%s: %w", cfg.Topic, err)
	}
	return NewLoop(client, handler, gate, log, cfg.LoopOptions()), nil
}

// NewLoop — конструктор цикла над готовым клиентом.
func NewLoop(client LogClient, handler ports.RecordHandler, gate ports.HealthGate, log ports.Logger, opts LoopOptions) *Loop {
	l := &Loop{
		client:         client,
		handler:        handler,
		gate:           gate,
		log:            log,
		name:           opts.Name,
		instanceID:     opts.InstanceID,
		pollTimeout:    durationOr(opts.PollTimeout, 10*time.Second),
		processTimeout: durationOr(opts.ProcessTimeout, 30*time.Second),
		commitTimeout:  durationOr(opts.CommitTimeout, 10*time.Second),
		retryInitial:   durationOr(opts.RetryInitial, 1*time.Second),
		retryMax:       durationOr(opts.RetryMax, 30*time.Second),
		now:            time.Now,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	l.state.Store(int32(StatePolling))
	return l
}

// Run — основной цикл:
//  1. процесс нездоров → выходим (ErrUnhealthy);
//  2. poll с ограниченным таймаутом, пустой результат — просто следующая итерация;
//  3. пачка засевается минимальными оффсетами партиций;
//  4. записи обрабатываются по порядку, успех сдвигает партицию за запись;
//  5. коммит всех позиций выполняется всегда, даже после сбоя; недообработанные
//     партиции затем перематываются, чтобы следующий poll перечитал их с коммита;
//  6. каждый сбой — один голос «нездоров»; цикл продолжает до проверки здоровья.
//
// При выходе соединение с логом закрывается ровно один раз.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.setState(StateStopped)
		if err := l.Close(); err != nil {
			l.log.Warnf(ctx, "kafka consumer close failed name=%s: %v", l.name, err)
		}
	}()

	l.log.Infof(ctx, "kafka consumer started name=%s poll_timeout=%s instance=%s", l.name, l.pollTimeout, l.instanceID)

	retry := l.retryInitial
	for {
		if !l.gate.IsHealthy() {
			l.log.Errorf(ctx, "kafka consumer stopping name=%s: process is unhealthy", l.name)
			return ErrUnhealthy
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		faulted := l.iterate(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if !faulted {
			retry = l.retryInitial
			continue
		}
		if !l.gate.IsHealthy() {
			continue
		}

		// Пауза с джиттером после сбоя, чтобы не долбить брокер/хранилище.
		sleep := l.withJitterEqual(retry)
		l.log.Infof(ctx, "kafka consumer backing off name=%s for %s", l.name, sleep)
		if !l.sleepWithBackoff(ctx, sleep) {
			return ctx.Err()
		}
		retry = l.nextBackoff(retry)
	}
}

// Close — закрывает клиент лога. Повторные вызовы возвращают результат первого.
func (l *Loop) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.client.Close()
	})
	return l.closeErr
}

// State — текущее состояние цикла.
func (l *Loop) State() State { return State(l.state.Load()) }

// iterate — одна итерация poll → dispatch → commit. Возвращает true, если был сбой.
func (l *Loop) iterate(ctx context.Context) (faulted bool) {
	l.setState(StatePolling)

	records, err := l.client.Poll(ctx, l.pollTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		l.fault(ctx, Classify(OpPoll, err), nil)
		return true
	}
	if len(records) == 0 {
		return false
	}

	ctx = ctxmeta.WithBatchID(ctx, uuid.NewString())
	metrics.KafkaRecordsPolled.WithLabelValues(l.name).Add(float64(len(records)))

	l.setState(StateDispatching)
	positions := seedPositions(records)

	// Коммит выполняется всегда: фиксируем ровно тот прогресс, который безопасен.
	// Недообработанные партиции затем перематываются к закоммиченному оффсету.
	defer func() {
		l.setState(StateCommitting)
		if err := l.commit(ctx, positions); err != nil {
			l.fault(ctx, Classify(OpCommit, err), nil)
			faulted = true
		}
		if ctx.Err() != nil {
			return
		}
		if err := l.rewind(ctx, positions.unfinished()); err != nil {
			l.fault(ctx, Classify(OpRewind, err), nil)
			faulted = true
		}
	}()

	dispatchCtx, span := tracer.Start(ctx, "kafka.dispatch", trace.WithAttributes(
		attribute.String("consumer.name", l.name),
		attribute.Int("batch.size", len(records)),
		attribute.Int("batch.partitions", positions.len()),
	))
	defer span.End()

	for i := range records {
		rec := records[i]
		if dispatchCtx.Err() != nil {
			return false
		}

		if err := l.handle(dispatchCtx, rec); err != nil {
			if dispatchCtx.Err() != nil {
				// остановка приложения, а не сбой записи
				return false
			}
			positions.rewind(rec.Position.TopicPartition())
			span.RecordError(err)
			l.fault(ctx, Classify(OpHandle, err), &rec.Position)
			return true
		}
		positions.advance(rec.Position)
	}
	return false
}

// handle — обработка одной записи с таймаутом. Паника обработчика превращается в ошибку.
func (l *Loop) handle(ctx context.Context, rec domain.Record) (err error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, l.processTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("record handler panic: %v", r)
		}
	}()

	if err = l.handler.HandleRecord(ctxTimeout, rec); err != nil {
		return err
	}
	metrics.KafkaRecordsProcessed.WithLabelValues(rec.Position.Topic).Inc()
	return nil
}

func (l *Loop) setState(s State) { l.state.Store(int32(s)) }

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
