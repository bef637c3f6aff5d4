package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/ports"
	"github.com/Gunvolt24/adbridge/pkg/metrics"
)

// Проверка, что AdHistoryRepository удовлетворяет интерфейсам хранилища.
var (
	_ ports.AdHistoryRepository = (*AdHistoryRepository)(nil)
	_ ports.BatchSink           = (*AdHistoryRepository)(nil)
)

// AdHistoryRepository — таблица истории объявлений в Postgres (pgxpool).
type AdHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewAdHistoryRepository — конструктор AdHistoryRepository.
func NewAdHistoryRepository(pool *pgxpool.Pool) *AdHistoryRepository {
	return &AdHistoryRepository{pool: pool}
}

const insertAdSQL = `
	INSERT INTO ad_history (
		uuid, adnr, title, status, source, medium, reference, business_name,
		employer_name, employer_orgnr, published, expires, created, updated, payload,
		kafka_topic, kafka_partition, kafka_offset
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15::jsonb, $16, $17, $18)
	ON CONFLICT (kafka_topic, kafka_partition, kafka_offset) DO NOTHING`

const selectAdColumns = `
	uuid, adnr, title, status, source, medium, reference, business_name,
	employer_name, employer_orgnr, published, expires, created, updated, payload,
	kafka_topic, kafka_partition, kafka_offset, inserted_at`

// SendBatch — пишет пачку строк одним pgx.Batch.
// Пачка выполняется в одной неявной транзакции: ошибка строки откатывает всю пачку
// и возвращается как SinkResult.HasError, ошибка соединения — как error.
// Повтор уже записанной позиции не создаёт строку (ON CONFLICT DO NOTHING).
func (r *AdHistoryRepository) SendBatch(ctx context.Context, ads []domain.Ad, positions []domain.LogPosition) (domain.SinkResult, error) {
	if len(ads) != len(positions) {
		return domain.SinkResult{}, fmt.Errorf("send batch: %d ads but %d positions", len(ads), len(positions))
	}
	if len(ads) == 0 {
		return domain.SinkResult{}, nil
	}

	batch := &pgx.Batch{}
	for i := range ads {
		args, err := insertArgs(&ads[i], positions[i])
		if err != nil {
			return domain.SinkResult{}, err
		}
		batch.Queue(insertAdSQL, args...)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	var res domain.SinkResult
	for i := range ads {
		tag, err := br.Exec()
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				metrics.WarehouseRowErrors.Inc()
				return domain.SinkResult{HasError: true, ErrorCount: 1}, nil
			}
			return domain.SinkResult{}, fmt.Errorf("exec batch row %d: %w", i, err)
		}
		res.Written += int(tag.RowsAffected())
	}

	metrics.WarehouseRowsWritten.Add(float64(res.Written))
	return res, nil
}

func insertArgs(ad *domain.Ad, pos domain.LogPosition) ([]any, error) {
	payload := ad.Raw
	if len(payload) == 0 {
		raw, err := json.Marshal(ad)
		if err != nil {
			return nil, fmt.Errorf("encode payload uuid=%s: %w", ad.UUID, err)
		}
		payload = raw
	}

	var employerName, employerOrgnr string
	if ad.Employer != nil {
		employerName, employerOrgnr = ad.Employer.Name, ad.Employer.Orgnr
	}

	return []any{
		ad.UUID, ad.AdNumber, ad.Title, ad.Status, ad.Source, ad.Medium, ad.Reference, ad.BusinessName,
		employerName, employerOrgnr, ad.Published, ad.Expires, ad.Created, ad.Updated, string(payload),
		pos.Topic, pos.Partition, pos.Offset,
	}, nil
}

// LatestByUUID — последнее состояние объявления. Если не нашли, возвращает (nil, nil).
func (r *AdHistoryRepository) LatestByUUID(ctx context.Context, uuid string) (*domain.AdHistoryEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+selectAdColumns+`
		FROM ad_history
		WHERE uuid = $1
		ORDER BY updated DESC, id DESC
		LIMIT 1
	`, uuid)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select latest ad: %w", err)
	}
	return &entry, nil
}

// HistoryByUUID — все версии объявления, от старых к новым.
func (r *AdHistoryRepository) HistoryByUUID(ctx context.Context, uuid string) ([]domain.AdHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectAdColumns+`
		FROM ad_history
		WHERE uuid = $1
		ORDER BY updated ASC, id ASC
	`, uuid)
	if err != nil {
		return nil, fmt.Errorf("select ad history: %w", err)
	}
	return collectEntries(rows)
}

// ListRecent — постраничный список последних записанных изменений (новые первыми).
func (r *AdHistoryRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.AdHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+selectAdColumns+`
		FROM ad_history
		ORDER BY inserted_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select recent ads: %w", err)
	}
	return collectEntries(rows)
}

// CountByStatus — число объявлений по статусу их последней версии.
func (r *AdHistoryRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, count(*)
		FROM (
			SELECT DISTINCT ON (uuid) uuid, status
			FROM ad_history
			ORDER BY uuid, updated DESC, id DESC
		) latest
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("status rows: %w", err)
	}
	return counts, nil
}

// ------вспомогательные функции------

func collectEntries(rows pgx.Rows) ([]domain.AdHistoryEntry, error) {
	defer rows.Close()

	var out []domain.AdHistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ad: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ad rows: %w", err)
	}
	return out, nil
}

func scanEntry(row pgx.Row) (domain.AdHistoryEntry, error) {
	var (
		e                           domain.AdHistoryEntry
		employerName, employerOrgnr string
		payload                     []byte
	)
	if err := row.Scan(
		&e.UUID, &e.AdNumber, &e.Title, &e.Status, &e.Source, &e.Medium, &e.Reference, &e.BusinessName,
		&employerName, &employerOrgnr, &e.Published, &e.Expires, &e.Created, &e.Updated, &payload,
		&e.Position.Topic, &e.Position.Partition, &e.Position.Offset, &e.InsertedAt,
	); err != nil {
		return domain.AdHistoryEntry{}, err
	}
	if employerName != "" || employerOrgnr != "" {
		e.Employer = &domain.Employer{Name: employerName, Orgnr: employerOrgnr}
	}
	e.Raw = json.RawMessage(payload)
	return e, nil
}
