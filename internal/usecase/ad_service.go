package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/ports"
	"github.com/Gunvolt24/adbridge/pkg/validate"
)

var (
	_ ports.RecordHandler = (*AdService)(nil)
	_ ports.AdReadService = (*AdService)(nil)
)

// AdService — прикладная логика: запись событий объявлений в хранилище и чтение истории.
type AdService struct {
	repo      ports.AdHistoryRepository // хранилище истории
	cache     ports.AdCache             // кэш последнего состояния
	log       ports.Logger
	validator ports.AdValidator
}

// NewAdService — DI-конструктор.
func NewAdService(
	repo ports.AdHistoryRepository,
	cache ports.AdCache,
	log ports.Logger,
	validator ports.AdValidator,
) *AdService {
	return &AdService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
	}
}

// HandleRecord — обработка одной записи из топика.
// Шаги:
//  1. декодирование JSON (validate.DecodeAd);
//  2. доменная валидация (validate.ErrInvalidAd);
//  3. запись пачки из одной строки в хранилище;
//  4. инвалидация кэша.
//
// Любая ошибка означает, что позиция записи не продвигается.
func (s *AdService) HandleRecord(ctx context.Context, rec domain.Record) error {
	pos := rec.Position

	ad, err := validate.DecodeAd(rec.Value)
	if err != nil {
		s.log.Warnf(ctx, "invalid ad payload topic=%s partition=%d offset=%d err=%v", pos.Topic, pos.Partition, pos.Offset, err)
		return err
	}

	if err := s.validator.Validate(ctx, &ad); err != nil {
		s.log.Warnf(ctx, "validation failed uuid=%s offset=%d err=%v", ad.UUID, pos.Offset, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	res, err := s.repo.SendBatch(ctx, []domain.Ad{ad}, []domain.LogPosition{pos})
	if err != nil {
		s.log.Errorf(ctx, "repo.SendBatch failed uuid=%s err=%v", ad.UUID, err)
		return fmt.Errorf("%w: %w", domain.ErrSinkUnavailable, err)
	}
	if res.HasError {
		return fmt.Errorf("%w: %d row(s) uuid=%s", domain.ErrSinkRejected, res.ErrorCount, ad.UUID)
	}

	s.cache.Delete(ctx, ad.UUID)

	if res.Written == 0 {
		// повторная доставка уже сохранённой позиции
		s.log.Infof(ctx, "ad already stored uuid=%s topic=%s partition=%d offset=%d", ad.UUID, pos.Topic, pos.Partition, pos.Offset)
		return nil
	}
	s.log.Infof(ctx, "ad stored uuid=%s status=%s offset=%d", ad.UUID, ad.Status, pos.Offset)
	return nil
}

// LatestAd — последнее состояние объявления: сначала кэш, при промахе — БД с записью в кэш.
// Возвращает (nil, nil), если объявления нет.
func (s *AdService) LatestAd(ctx context.Context, uuid string) (*domain.AdHistoryEntry, error) {
	if entry, found := s.cache.Get(ctx, uuid); found {
		s.log.Infof(ctx, "cache hit for ad=%s", uuid)
		return entry, nil
	}
	s.log.Infof(ctx, "cache miss for ad=%s", uuid)

	start := time.Now()
	entry, err := s.repo.LatestByUUID(ctx, uuid)
	if err != nil {
		s.log.Errorf(ctx, "repo.LatestByUUID failed uuid=%s err=%v", uuid, err)
		return nil, err
	}

	if entry != nil {
		if setErr := s.cache.Set(ctx, entry); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed uuid=%s err=%v", uuid, setErr)
		}
	}

	s.log.Infof(ctx, "db fetch ad=%s took=%s", uuid, time.Since(start))
	return entry, nil
}

// AdHistory — все сохранённые версии объявления в порядке лога.
func (s *AdService) AdHistory(ctx context.Context, uuid string) ([]domain.AdHistoryEntry, error) {
	return s.repo.HistoryByUUID(ctx, uuid)
}

// RecentChanges — последние изменения (пагинация уже валидирована на верхнем уровне).
func (s *AdService) RecentChanges(ctx context.Context, limit, offset int) ([]domain.AdHistoryEntry, error) {
	return s.repo.ListRecent(ctx, limit, offset)
}

// StatusCounts — число объявлений по текущему статусу.
func (s *AdService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByStatus(ctx)
}

// WarmUpCache — прогрев кэша последними изменениями из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *AdService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.ListRecent(ctx, n, 0)
	if err != nil {
		s.log.Errorf(ctx, "repo.ListRecent failed n=%d err=%v", n, err)
		return err
	}

	// список отсортирован от новых к старым: в кэш попадает первая встреченная версия
	seen := make(map[string]struct{}, len(list))
	for i := range list {
		entry := list[i]
		if _, ok := seen[entry.UUID]; ok {
			continue
		}
		seen[entry.UUID] = struct{}{}
		if setErr := s.cache.Set(ctx, &entry); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed uuid=%s err=%v", entry.UUID, setErr)
		}
	}
	s.log.Infof(ctx, "cache warmed with %d ads in %s", len(seen), time.Since(start))
	return nil
}
