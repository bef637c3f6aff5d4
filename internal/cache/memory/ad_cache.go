package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/ports"
)

var _ ports.AdCache = (*LRUCacheTTL)(nil)

// LRUCacheTTL — кэш последнего состояния объявлений: LRU-вытеснение + TTL.
//
// TTL считается от момента записи и не продлевается чтением: объявление меняется,
// и горячая запись не должна жить в кэше бесконечно. ttl <= 0 — без срока.
// Set не заменяет закэшированную версию более старой (см. olderThan).
type LRUCacheTTL struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	order *list.List // front — последний использованный
	byID  map[string]*list.Element
}

type slot struct {
	uuid      string
	entry     *domain.AdHistoryEntry
	expiresAt time.Time
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	return newCache(capacity, ttl, time.Now)
}

func newCache(capacity int, ttl time.Duration, now func() time.Time) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		now:      now,
		order:    list.New(),
		byID:     make(map[string]*list.Element, capacity),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, uuid string) (*domain.AdHistoryEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.live(uuid, c.now())
	if !ok {
		return nil, false
	}
	observe(opHit)
	return cloneEntry(s.entry), true
}

func (c *LRUCacheTTL) Set(_ context.Context, e *domain.AdHistoryEntry) error {
	if e == nil || e.UUID == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byID[e.UUID]; ok {
		s := elem.Value.(*slot)
		if !c.expired(s, now) && olderThan(e, s.entry) {
			observe(opStale)
			return nil
		}
		s.entry = cloneEntry(e)
		s.expiresAt = c.deadline(now)
		c.order.MoveToFront(elem)
		return nil
	}

	c.dropExpiredTail(now)
	c.byID[e.UUID] = c.order.PushFront(&slot{
		uuid:      e.UUID,
		entry:     cloneEntry(e),
		expiresAt: c.deadline(now),
	})
	for c.order.Len() > c.capacity {
		c.drop(c.order.Back(), opEvicted)
	}
	c.reportSize()
	return nil
}

// Delete — инвалидация после записи новой версии объявления.
func (c *LRUCacheTTL) Delete(_ context.Context, uuid string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byID[uuid]; ok {
		c.drop(elem, opInvalidated)
		c.reportSize()
	}
}

// Len — число записей, включая ещё не вычищенные устаревшие.
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
