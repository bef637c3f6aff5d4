package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/pkg/metrics"
)

// commit фиксирует позиции пачки одним вызовом.
// Контекст отвязан от отмены: при остановке безопасный прогресс всё равно записывается.
func (l *Loop) commit(ctx context.Context, positions *positionMap) error {
	if positions.len() == 0 {
		return nil
	}

	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.commitTimeout)
	defer cancel()

	meta := domain.CommitMetadata{CommittedAt: l.now().UTC(), InstanceID: l.instanceID}
	offsets := positions.offsets(meta)

	if err := l.client.Commit(commitCtx, offsets); err != nil {
		metrics.KafkaCommits.WithLabelValues("error").Inc()
		return fmt.Errorf("commit offsets %s: %w", describeOffsets(offsets), err)
	}

	metrics.KafkaCommits.WithLabelValues("ok").Inc()
	l.log.Infof(ctx, "offsets committed name=%s offsets=%s at=%s", l.name, describeOffsets(offsets), meta.CommittedAt.Format(time.RFC3339))
	return nil
}

// rewind — просит клиент перечитать партиции; время ограничено так же, как у коммита.
func (l *Loop) rewind(ctx context.Context, tps []domain.TopicPartition) error {
	if len(tps) == 0 {
		return nil
	}

	rewindCtx, cancel := context.WithTimeout(ctx, l.commitTimeout)
	defer cancel()

	if err := l.client.Rewind(rewindCtx, tps); err != nil {
		return fmt.Errorf("rewind partitions %v: %w", tps, err)
	}
	l.log.Infof(ctx, "partitions rewound name=%s partitions=%v", l.name, tps)
	return nil
}

// fault логирует сбой и отдаёт голос «нездоров». Сам цикл не останавливает.
func (l *Loop) fault(ctx context.Context, f *Fault, pos *domain.LogPosition) {
	metrics.KafkaFaults.WithLabelValues(f.Kind.String()).Inc()

	switch {
	case pos != nil:
		metrics.KafkaRecordsFailed.WithLabelValues(pos.Topic).Inc()
		l.log.Warnf(ctx, "%s fault name=%s op=%s topic=%s partition=%d offset=%d: %v (partition rewound, will be redelivered)",
			f.Kind, l.name, f.Op, pos.Topic, pos.Partition, pos.Offset, f.Err)
	case f.Kind == FaultUnclassified:
		l.log.Errorf(ctx, "unclassified fault name=%s op=%s: %v", l.name, f.Op, f.Err)
	default:
		l.log.Warnf(ctx, "%s fault name=%s op=%s: %v", f.Kind, l.name, f.Op, f.Err)
	}

	l.gate.AddUnhealthyVote()
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (l *Loop) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (l *Loop) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > l.retryMax {
		return l.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная.
func (l *Loop) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(l.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
