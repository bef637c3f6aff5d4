//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — даёт уникальные topic/group на основе базового префикса.
// Пример: base="ads-itest" → "ads-itest-20250826T010203123456789".
func UniqueTopicAndGroup(base string) (topic, group string) {
	// наносекунды включаем в строку и убираем точку, чтобы тема была валидной
	s := time.Now().UTC().Format("20060102T150405.000000000")
	s = strings.ReplaceAll(s, ".", "")
	return fmt.Sprintf("%s-%s", base, s), fmt.Sprintf("%s-%s", base, s)
}

// EnsureTopic — создаёт топик с одной партицией (если уже есть — это OK) и ждёт его в метаданных.
// broker может быть "host:port", "PLAINTEXT://host:port" или списком через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	return EnsureTopicPartitions(ctx, broker, topic, 1)
}

// EnsureTopicPartitions — то же, что EnsureTopic, но с заданным числом партиций.
// Топик создаётся через admin-клиент sarama: он сам находит контроллер кластера.
func EnsureTopicPartitions(ctx context.Context, broker, topic string, partitions int) error {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_8_0_0
	cfg.Admin.Timeout = 5 * time.Second

	admin, err := sarama.NewClusterAdmin([]string{firstBootstrap(broker)}, cfg)
	if err != nil {
		return fmt.Errorf("cluster admin: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopic(topic, &sarama.TopicDetail{
		NumPartitions:     int32(partitions),
		ReplicationFactor: 1,
	}, false)
	if err != nil && !topicExists(err) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	return waitTopicReady(ctx, admin, topic, partitions)
}

// Produce — пишет сообщения в топик (ключ → значение) синхронно.
func Produce(ctx context.Context, brokers []string, topic string, msgs ...kafka.Message) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	defer w.Close()
	return w.WriteMessages(ctx, msgs...)
}

// ---- helpers ----

// firstBootstrap берёт первый адрес из bootstrap-строки,
// а также снимает схему вида "PLAINTEXT://".
func firstBootstrap(raw string) string {
	// список брокеров?
	parts := strings.Split(raw, ",")
	first := strings.TrimSpace(parts[0])

	// есть схема?
	if strings.Contains(first, "://") {
		// url.Parse справится и с "PLAINTEXT://"
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func topicExists(err error) bool {
	var te *sarama.TopicError
	if errors.As(err, &te) {
		return te.Err == sarama.ErrTopicAlreadyExists
	}
	return errors.Is(err, sarama.ErrTopicAlreadyExists)
}

// waitTopicReady — топик виден в метаданных со всеми партициями.
func waitTopicReady(ctx context.Context, admin sarama.ClusterAdmin, topic string, partitions int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		meta, err := admin.DescribeTopics([]string{topic})
		switch {
		case err != nil:
			lastErr = err
		case len(meta) == 1 && meta[0].Err != sarama.ErrNoError:
			lastErr = meta[0].Err
		case len(meta) == 1 && len(meta[0].Partitions) >= partitions:
			return nil
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}
