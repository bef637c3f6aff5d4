package domain

import "time"

// LogPosition — позиция записи внутри одной партиции топика.
type LogPosition struct {
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Offset    int64  `json:"offset"`
}

// TopicPartition — ключ позиции без оффсета.
func (p LogPosition) TopicPartition() TopicPartition {
	return TopicPartition{Topic: p.Topic, Partition: p.Partition}
}

// TopicPartition — одна партиция топика.
type TopicPartition struct {
	Topic     string
	Partition int32
}

// Record — прочитанная из лога запись. После чтения не изменяется.
type Record struct {
	Key       string // пустая строка — ключа нет
	Value     []byte
	Timestamp time.Time
	Position  LogPosition
}

// CommitMetadata — служебные данные, прикладываемые к коммиту оффсета.
// На корректность не влияют, нужны для трассировки в эксплуатации.
type CommitMetadata struct {
	CommittedAt time.Time `json:"committed_at"`
	InstanceID  string    `json:"instance_id,omitempty"`
}

// CommitOffset — следующий оффсет для чтения и метаданные коммита.
type CommitOffset struct {
	Offset   int64
	Metadata CommitMetadata
}
