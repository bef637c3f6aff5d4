package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/pkg/metrics"
)

// Метки операций для cache_operations_total.
const (
	opHit         = "hit"
	opMiss        = "miss"
	opExpired     = "expired"
	opEvicted     = "evicted"
	opInvalidated = "invalidated"
	opStale       = "stale_set"
)

func observe(op string) { metrics.CacheOps.WithLabelValues(op).Inc() }

func (c *LRUCacheTTL) reportSize() { metrics.CacheSize.Set(float64(len(c.byID))) }

// live — актуальный слот по uuid; поднимает его в начало списка. Вызывать под mu.
func (c *LRUCacheTTL) live(uuid string, now time.Time) (*slot, bool) {
	elem, ok := c.byID[uuid]
	if !ok {
		observe(opMiss)
		return nil, false
	}
	s := elem.Value.(*slot)
	if c.expired(s, now) {
		c.drop(elem, opExpired)
		c.reportSize()
		return nil, false
	}
	c.order.MoveToFront(elem)
	return s, true
}

func (c *LRUCacheTTL) drop(elem *list.Element, op string) {
	if elem == nil {
		return
	}
	delete(c.byID, elem.Value.(*slot).uuid)
	c.order.Remove(elem)
	observe(op)
}

// dropExpiredTail — чистит хвост от устаревших слотов до первого живого.
// Хвост — давно не читанные записи, именно они чаще всего и устаревают.
func (c *LRUCacheTTL) dropExpiredTail(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.order.Back(); back != nil && c.expired(back.Value.(*slot), now); back = c.order.Back() {
		c.drop(back, opExpired)
	}
}

func (c *LRUCacheTTL) expired(s *slot, now time.Time) bool {
	return c.ttl > 0 && now.After(s.expiresAt)
}

func (c *LRUCacheTTL) deadline(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// olderThan — a описывает более раннюю версию объявления, чем b.
// При равном updated решает позиция в логе, если обе версии из одной партиции.
func olderThan(a, b *domain.AdHistoryEntry) bool {
	if !a.Updated.Equal(b.Updated) {
		return a.Updated.Before(b.Updated)
	}
	if a.Position.TopicPartition() == b.Position.TopicPartition() {
		return a.Position.Offset < b.Position.Offset
	}
	return false
}

// cloneEntry — глубокая копия: ни вызывающий, ни кэш не видят изменений друг друга.
func cloneEntry(src *domain.AdHistoryEntry) *domain.AdHistoryEntry {
	dst := *src
	if src.Employer != nil {
		emp := *src.Employer
		dst.Employer = &emp
	}
	for _, p := range []**time.Time{&dst.Published, &dst.Expires, &dst.Created} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	if src.Raw != nil {
		dst.Raw = append(dst.Raw[:0:0], src.Raw...)
	}
	return &dst
}
