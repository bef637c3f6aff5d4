package memory

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

var base = time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

// fakeClock — ручные часы, чтобы TTL проверялся без sleep.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newEntry(id string) *domain.AdHistoryEntry {
	published := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	return &domain.AdHistoryEntry{
		Ad: domain.Ad{
			UUID:      id,
			Title:     "t",
			Status:    domain.StatusActive,
			Employer:  &domain.Employer{Name: "x"},
			Published: &published,
			Updated:   base,
			Raw:       json.RawMessage(`{"uuid":"` + id + `"}`),
		},
		Position: domain.LogPosition{Topic: "ads", Partition: 0, Offset: 1},
	}
}

func version(id, status string, updated time.Time, offset int64) *domain.AdHistoryEntry {
	e := newEntry(id)
	e.Status = status
	e.Updated = updated
	e.Position.Offset = offset
	return e
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewLRUCacheTTL(2, 5*time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "id-1"); ok {
		t.Fatalf("expected miss before Set")
	}
	_ = c.Set(ctx, newEntry("id-1"))
	if got, ok := c.Get(ctx, "id-1"); !ok || got.UUID != "id-1" {
		t.Fatalf("expected hit for id-1")
	}
}

func TestSet_IgnoresEmpty(t *testing.T) {
	c := NewLRUCacheTTL(2, 0)
	ctx := context.Background()

	_ = c.Set(ctx, nil)
	_ = c.Set(ctx, &domain.AdHistoryEntry{})
	if c.Len() != 0 {
		t.Fatalf("nil and uuid-less entries must not be cached")
	}
}

func TestTTL_FixedFromWrite(t *testing.T) {
	clk := &fakeClock{t: base}
	c := newCache(2, time.Minute, clk.now)
	ctx := context.Background()

	_ = c.Set(ctx, newEntry("ttl"))

	// чтение не продлевает срок
	clk.advance(40 * time.Second)
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit before TTL")
	}
	clk.advance(30 * time.Second)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss 70s after write even though it was read at 40s")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be removed on Get")
	}
}

func TestTTL_ExpiredTailDroppedOnSet(t *testing.T) {
	clk := &fakeClock{t: base}
	c := newCache(10, time.Minute, clk.now)
	ctx := context.Background()

	_ = c.Set(ctx, newEntry("old-1"))
	_ = c.Set(ctx, newEntry("old-2"))
	clk.advance(2 * time.Minute)
	_ = c.Set(ctx, newEntry("fresh"))

	if c.Len() != 1 {
		t.Fatalf("expired tail must be dropped, len=%d", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCacheTTL(2, 0)
	ctx := context.Background()

	_ = c.Set(ctx, newEntry("A"))
	_ = c.Set(ctx, newEntry("B"))
	// A становится последним использованным, B — кандидат на вытеснение
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	_ = c.Set(ctx, newEntry("C"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok || c.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestSet_DoesNotRegress(t *testing.T) {
	c := NewLRUCacheTTL(4, 0)
	ctx := context.Background()

	_ = c.Set(ctx, version("A", domain.StatusInactive, base.Add(time.Hour), 7))

	// более старая по updated
	_ = c.Set(ctx, version("A", domain.StatusActive, base, 9))
	got, _ := c.Get(ctx, "A")
	if got.Status != domain.StatusInactive {
		t.Fatalf("older version must not replace newer, got %s", got.Status)
	}

	// тот же updated, меньший offset в той же партиции
	_ = c.Set(ctx, version("A", domain.StatusActive, base.Add(time.Hour), 6))
	if got, _ := c.Get(ctx, "A"); got.Status != domain.StatusInactive {
		t.Fatalf("earlier offset must not replace later, got %s", got.Status)
	}

	// более новая — заменяет
	_ = c.Set(ctx, version("A", domain.StatusStopped, base.Add(2*time.Hour), 8))
	if got, _ := c.Get(ctx, "A"); got.Status != domain.StatusStopped {
		t.Fatalf("newer version must replace, got %s", got.Status)
	}
}

func TestSet_ExpiredSlotReplacedByOlder(t *testing.T) {
	clk := &fakeClock{t: base}
	c := newCache(2, time.Minute, clk.now)
	ctx := context.Background()

	_ = c.Set(ctx, version("A", domain.StatusInactive, base.Add(time.Hour), 7))
	clk.advance(2 * time.Minute)

	// устаревшая запись ничего не гарантирует — принимаем то, что пришло из базы
	_ = c.Set(ctx, version("A", domain.StatusActive, base, 1))
	if got, ok := c.Get(ctx, "A"); !ok || got.Status != domain.StatusActive {
		t.Fatalf("expired slot must be overwritten, got %+v ok=%v", got, ok)
	}
}

func TestDelete_Invalidates(t *testing.T) {
	c := NewLRUCacheTTL(2, 0)
	ctx := context.Background()

	_ = c.Set(ctx, newEntry("A"))
	c.Delete(ctx, "A")
	c.Delete(ctx, "missing") // no-op

	if _, ok := c.Get(ctx, "A"); ok {
		t.Fatalf("expected miss after Delete")
	}
	if len(c.byID) != 0 || c.order.Len() != 0 {
		t.Fatalf("index and list must be empty")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewLRUCacheTTL(1, 0)
	ctx := context.Background()
	orig := newEntry("Z")
	_ = c.Set(ctx, orig)

	orig.Employer.Name = "mutated"

	e1, _ := c.Get(ctx, "Z")
	e1.Raw[0] = '['
	*e1.Published = e1.Published.Add(time.Hour)

	e2, _ := c.Get(ctx, "Z")
	if e2.Employer.Name != "x" || e2.Raw[0] != '{' || e2.Published.Hour() != 8 {
		t.Fatalf("cache should return clones, not pointers to internal value")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := NewLRUCacheTTL(8, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, newEntry(id))
				_, _ = c.Get(ctx, id)
				c.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()
}
