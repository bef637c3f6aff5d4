//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/adbridge/internal/domain"
	pgrepo "github.com/Gunvolt24/adbridge/internal/repo/postgres"
	"github.com/Gunvolt24/adbridge/internal/testutil"
)

// startRepo — поднимает Postgres с миграциями и отдаёт репозиторий.
func startRepo(t *testing.T) (*pgrepo.AdHistoryRepository, context.Context) {
	t.Helper()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	// короткий контекст — на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	return pgrepo.NewAdHistoryRepository(pg.Pool), ctx
}

func pos(partition int32, offset int64) domain.LogPosition {
	return domain.LogPosition{Topic: "ads", Partition: partition, Offset: offset}
}

// 1) Запись и чтение последней версии
func TestRepo_SendBatchAndLatest_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	ad, _ := testutil.MakeAdJSON()
	res, err := repo.SendBatch(ctx, []domain.Ad{ad}, []domain.LogPosition{pos(0, 10)})
	require.NoError(t, err)
	require.False(t, res.HasError)
	require.Equal(t, 1, res.Written)

	got, err := repo.LatestByUUID(ctx, ad.UUID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, ad.UUID, got.UUID)
	require.Equal(t, ad.Title, got.Title)
	require.Equal(t, pos(0, 10), got.Position)
	require.NotNil(t, got.Employer)
	require.Equal(t, "123456789", got.Employer.Orgnr)
	require.JSONEq(t, string(ad.Raw), string(got.Raw))
	require.False(t, got.InsertedAt.IsZero())
}

// 2) Повторная доставка той же позиции не создаёт строку
func TestRepo_SendBatch_RedeliveryIsIdempotent_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	ad, _ := testutil.MakeAdJSON()
	ads := []domain.Ad{ad}
	positions := []domain.LogPosition{pos(1, 42)}

	res, err := repo.SendBatch(ctx, ads, positions)
	require.NoError(t, err)
	require.Equal(t, 1, res.Written)

	res, err = repo.SendBatch(ctx, ads, positions)
	require.NoError(t, err)
	require.False(t, res.HasError)
	require.Equal(t, 0, res.Written)

	hist, err := repo.HistoryByUUID(ctx, ad.UUID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
}

// 3) История по uuid — от старых версий к новым
func TestRepo_HistoryAndLatest_Order_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	id := testutil.NewUUID()
	base := time.Now().UTC().Truncate(time.Second)
	v1, _ := testutil.MakeAdJSON(testutil.WithUUID(id), testutil.WithUpdated(base))
	v2, _ := testutil.MakeAdJSON(testutil.WithUUID(id), testutil.WithUpdated(base.Add(time.Minute)), testutil.WithStatus(domain.StatusInactive))

	// пишем в обратном порядке: сортировка идёт по updated, а не по порядку вставки
	_, err := repo.SendBatch(ctx, []domain.Ad{v2, v1}, []domain.LogPosition{pos(0, 2), pos(0, 3)})
	require.NoError(t, err)

	hist, err := repo.HistoryByUUID(ctx, id)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, domain.StatusActive, hist[0].Status)
	require.Equal(t, domain.StatusInactive, hist[1].Status)

	latest, err := repo.LatestByUUID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, latest.Status)
}

// 4) Отсутствующее объявление — (nil, nil)
func TestRepo_LatestByUUID_NotFound_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	got, err := repo.LatestByUUID(ctx, testutil.NewUUID())
	require.NoError(t, err)
	require.Nil(t, got)
}

// 5) Пагинация последних изменений и подсчёт по статусам последней версии
func TestRepo_ListRecentAndCountByStatus_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	id := testutil.NewUUID()
	base := time.Now().UTC().Truncate(time.Second)
	first, _ := testutil.MakeAdJSON(testutil.WithUUID(id), testutil.WithUpdated(base))
	second, _ := testutil.MakeAdJSON(testutil.WithUUID(id), testutil.WithUpdated(base.Add(time.Minute)), testutil.WithStatus(domain.StatusStopped))
	other, _ := testutil.MakeAdJSON()

	for i, ad := range []domain.Ad{first, second, other} {
		_, err := repo.SendBatch(ctx, []domain.Ad{ad}, []domain.LogPosition{pos(0, int64(i))})
		require.NoError(t, err)
	}

	page, err := repo.ListRecent(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, other.UUID, page[0].UUID)

	rest, err := repo.ListRecent(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, first.UUID, rest[0].UUID)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{domain.StatusStopped: 1, domain.StatusActive: 1}, counts)
}

// 6) Объявление без исходного payload — сериализуем сущность
func TestRepo_SendBatch_WithoutRaw_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	ad := testutil.MakeAd()
	res, err := repo.SendBatch(ctx, []domain.Ad{ad}, []domain.LogPosition{pos(0, 1)})
	require.NoError(t, err)
	require.Equal(t, 1, res.Written)

	got, err := repo.LatestByUUID(ctx, ad.UUID)
	require.NoError(t, err)
	require.Contains(t, string(got.Raw), ad.UUID)
}

// 7) Ошибка строки (нарушение CHECK) — HasError, пачка откатывается целиком
func TestRepo_SendBatch_RowErrorRollsBack_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	good, _ := testutil.MakeAdJSON()
	bad, _ := testutil.MakeAdJSON(testutil.WithStatus(""))

	res, err := repo.SendBatch(ctx, []domain.Ad{good, bad}, []domain.LogPosition{pos(0, 1), pos(0, 2)})
	require.NoError(t, err)
	require.True(t, res.HasError)
	require.Equal(t, 1, res.ErrorCount)
	require.Equal(t, 0, res.Written)

	got, err := repo.LatestByUUID(ctx, good.UUID)
	require.NoError(t, err)
	require.Nil(t, got)
}

// 8) Несовпадение длин — ошибка без обращения к базе
func TestRepo_SendBatch_LengthMismatch_TC(t *testing.T) {
	t.Parallel()
	repo, ctx := startRepo(t)

	_, err := repo.SendBatch(ctx, []domain.Ad{testutil.MakeAd()}, nil)
	require.Error(t, err)
}
