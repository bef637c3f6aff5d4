package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/segmentio/kafka-go"
)

// ConsumerConfig — настройки одного консьюмера (один топик, один цикл).
type ConsumerConfig struct {
	Driver      string // kafkago|sarama
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first|last
	Version     string // версия протокола для sarama, например "2.8.0"
	ClientID    string
	InstanceID  string // попадает в метаданные коммита

	PollTimeout    time.Duration
	PollLinger     time.Duration
	MaxPollRecords int
	ProcessTimeout time.Duration
	CommitTimeout  time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

const (
	defaultPollLinger     = 200 * time.Millisecond
	defaultMaxPollRecords = 500
)

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом (CommitInterval = 0).
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
	}

	if c.startFromFirst() {
		rc.StartOffset = kafka.FirstOffset
	} else {
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

// SaramaConfig — конфигурация sarama без автокоммита.
func (c *ConsumerConfig) SaramaConfig() (*sarama.Config, error) {
	sc := sarama.NewConfig()
	if v := strings.TrimSpace(c.Version); v != "" {
		ver, err := sarama.ParseKafkaVersion(v)
		if err != nil {
			return nil, fmt.Errorf("parse kafka version %q: %w", v, err)
		}
		sc.Version = ver
	}
	if c.ClientID != "" {
		sc.ClientID = c.ClientID
	}

	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.AutoCommit.Enable = false
	if c.startFromFirst() {
		sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		sc.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	return sc, nil
}

// LoopOptions — параметры цикла, выведенные из конфигурации.
func (c *ConsumerConfig) LoopOptions() LoopOptions {
	return LoopOptions{
		Name:           c.Topic,
		InstanceID:     c.InstanceID,
		PollTimeout:    c.PollTimeout,
		ProcessTimeout: c.ProcessTimeout,
		CommitTimeout:  c.CommitTimeout,
		RetryInitial:   c.RetryInitial,
		RetryMax:       c.RetryMax,
	}
}

func (c *ConsumerConfig) startFromFirst() bool {
	return strings.EqualFold(strings.TrimSpace(c.StartOffset), "first")
}

func (c *ConsumerConfig) pollLinger() time.Duration {
	if c.PollLinger <= 0 {
		return defaultPollLinger
	}
	return c.PollLinger
}

func (c *ConsumerConfig) maxPollRecords() int {
	if c.MaxPollRecords <= 0 {
		return defaultMaxPollRecords
	}
	return c.MaxPollRecords
}
