package health

import (
	"sync/atomic"

	"github.com/Gunvolt24/adbridge/internal/ports"
	"github.com/Gunvolt24/adbridge/pkg/metrics"
)

var (
	_ ports.HealthGate  = (*Gate)(nil)
	_ ports.HealthProbe = (*Gate)(nil)
)

// Gate — здоровье процесса на основе голосов «нездоров».
// Как только число голосов достигает порога, процесс считается нездоровым
// до перезапуска. Один Gate разделяют все консьюмеры процесса.
type Gate struct {
	threshold int64
	votes     atomic.Int64
	ready     atomic.Bool
}

// New — конструктор; threshold <= 0 трактуется как 1 (первый же голос валит процесс).
func New(threshold int) *Gate {
	if threshold <= 0 {
		threshold = 1
	}
	return &Gate{threshold: int64(threshold)}
}

// IsHealthy — без побочных эффектов.
func (g *Gate) IsHealthy() bool {
	return g.votes.Load() < g.threshold
}

// AddUnhealthyVote — добавляет голос; безопасно вызывать из нескольких горутин.
func (g *Gate) AddUnhealthyVote() {
	n := g.votes.Add(1)
	metrics.HealthVotes.Set(float64(n))
}

// Votes — текущее число голосов.
func (g *Gate) Votes() int64 { return g.votes.Load() }

// MarkReady — приложение поднялось и начало потреблять.
func (g *Gate) MarkReady() { g.ready.Store(true) }

// IsReady — готов принимать трафик: поднят и здоров.
func (g *Gate) IsReady() bool { return g.ready.Load() && g.IsHealthy() }
