package kafka

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

// positionMap — следующий оффсет к коммиту по каждой партиции текущей пачки.
// Живёт одну итерацию цикла. seed — минимальный оффсет партиции в пачке:
// с него начнётся повторная доставка, если обработка оборвётся.
// last — максимальный полученный оффсет: всё, что между next и last, транспорт
// уже отдал, и без перемотки клиента эти записи больше не придут.
type positionMap struct {
	seed map[domain.TopicPartition]int64
	next map[domain.TopicPartition]int64
	last map[domain.TopicPartition]int64
}

// seedPositions — группирует записи по партициям и засевает карту минимальными оффсетами.
func seedPositions(records []domain.Record) *positionMap {
	p := &positionMap{
		seed: make(map[domain.TopicPartition]int64),
		next: make(map[domain.TopicPartition]int64),
		last: make(map[domain.TopicPartition]int64),
	}
	for _, rec := range records {
		tp := rec.Position.TopicPartition()
		if cur, ok := p.seed[tp]; !ok || rec.Position.Offset < cur {
			p.seed[tp] = rec.Position.Offset
		}
		if cur, ok := p.last[tp]; !ok || rec.Position.Offset > cur {
			p.last[tp] = rec.Position.Offset
		}
	}
	for tp, off := range p.seed {
		p.next[tp] = off
	}
	return p
}

// advance — запись обработана: партиция сдвигается за неё.
func (p *positionMap) advance(pos domain.LogPosition) {
	p.next[pos.TopicPartition()] = pos.Offset + 1
}

// rewind — сбой на партиции: возвращаемся к минимальному оффсету пачки.
func (p *positionMap) rewind(tp domain.TopicPartition) {
	if off, ok := p.seed[tp]; ok {
		p.next[tp] = off
	}
}

func (p *positionMap) len() int { return len(p.next) }

// unfinished — партиции, чьи полученные записи обработаны не до конца
// (сбой или прерванная пачка). Клиент должен перечитать их с закоммиченного оффсета.
func (p *positionMap) unfinished() []domain.TopicPartition {
	var tps []domain.TopicPartition
	for tp, next := range p.next {
		if next <= p.last[tp] {
			tps = append(tps, tp)
		}
	}
	sortPartitions(tps)
	return tps
}

// offsets — снимок для коммита; все партиции уходят одним вызовом.
func (p *positionMap) offsets(meta domain.CommitMetadata) map[domain.TopicPartition]domain.CommitOffset {
	out := make(map[domain.TopicPartition]domain.CommitOffset, len(p.next))
	for tp, off := range p.next {
		out[tp] = domain.CommitOffset{Offset: off, Metadata: meta}
	}
	return out
}

// describeOffsets — "topic/partition=offset" через запятую, в стабильном порядке (для логов).
func describeOffsets(offsets map[domain.TopicPartition]domain.CommitOffset) string {
	parts := make([]string, 0, len(offsets))
	for _, tp := range sortedPartitions(offsets) {
		parts = append(parts, fmt.Sprintf("%s/%d=%d", tp.Topic, tp.Partition, offsets[tp].Offset))
	}
	return strings.Join(parts, ",")
}

func sortedPartitions(offsets map[domain.TopicPartition]domain.CommitOffset) []domain.TopicPartition {
	tps := make([]domain.TopicPartition, 0, len(offsets))
	for tp := range offsets {
		tps = append(tps, tp)
	}
	sortPartitions(tps)
	return tps
}

func sortPartitions(tps []domain.TopicPartition) {
	sort.Slice(tps, func(i, j int) bool {
		if tps[i].Topic != tps[j].Topic {
			return tps[i].Topic < tps[j].Topic
		}
		return tps[i].Partition < tps[j].Partition
	})
}
