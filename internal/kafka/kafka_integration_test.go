//go:build integration

package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/adbridge/internal/cache/memory"
	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/health"
	ikafka "github.com/Gunvolt24/adbridge/internal/kafka"
	"github.com/Gunvolt24/adbridge/internal/ports"
	pgrepo "github.com/Gunvolt24/adbridge/internal/repo/postgres"
	"github.com/Gunvolt24/adbridge/internal/testutil"
	"github.com/Gunvolt24/adbridge/internal/usecase"
	"github.com/Gunvolt24/adbridge/pkg/logger"
	"github.com/Gunvolt24/adbridge/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

var drivers = []string{ikafka.DriverKafkaGo, ikafka.DriverSarama}

// 1) Валидное объявление сохраняется, оффсет коммитится (оба драйвера)
func TestKafka_Valid_Saved_TC(t *testing.T) {
	st := newStack(t)

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-" + safe(t))
			require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

			gate := health.New(3)
			loop := st.newLoop(t, driver, topic, group, "first", st.service(), gate)
			errCh := runLoop(st.ctx, t, loop)

			ad, raw := testutil.MakeAdJSON()
			require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic, kafka.Message{Key: []byte(ad.UUID), Value: raw}))

			waitFor(t, 20*time.Second, "ad "+ad.UUID+" not saved in time", func() bool {
				got, err := st.repo.LatestByUUID(st.ctx, ad.UUID)
				require.NoError(t, err)
				return got != nil
			})
			require.True(t, gate.IsHealthy())
			requireNoExit(t, errCh)
		})
	}
}

// 2) Битое сообщение — сбой обработчика; при пороге 1 цикл останавливается,
// следующее за ним валидное не записывается (порядок в партиции не нарушается)
func TestKafka_PoisonRecord_HaltsLoop_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-poison-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	ad, raw := testutil.MakeAdJSON()
	require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic,
		kafka.Message{Value: []byte("not-a-json")},
		kafka.Message{Value: raw},
	))

	gate := health.New(1)
	loop := st.newLoop(t, ikafka.DriverKafkaGo, topic, group, "first", st.service(), gate)
	errCh := runLoop(st.ctx, t, loop)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ikafka.ErrUnhealthy)
	case <-time.After(20 * time.Second):
		t.Fatal("loop did not stop after poison record")
	}
	require.False(t, gate.IsHealthy())
	require.Equal(t, ikafka.StateStopped, loop.State())

	got, err := st.repo.LatestByUUID(st.ctx, ad.UUID)
	require.NoError(t, err)
	require.Nil(t, got)
}

// 3) StartOffset=last: сообщения, записанные до старта группы, не читаются
func TestKafka_StartOffset_Last_IgnoresOld_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-last-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	old, rold := testutil.MakeAdJSON()
	require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic, kafka.Message{Value: rold}))

	loop := st.newLoop(t, ikafka.DriverKafkaGo, topic, group, "last", st.service(), health.New(3))
	runLoop(st.ctx, t, loop)

	// публикуем новое повторно, пока не увидим сохранение: одно из сообщений
	// окажется после позиции, с которой начала читать группа
	fresh, rnew := testutil.MakeAdJSON()
	waitFor(t, 20*time.Second, "new ad not saved in time", func() bool {
		require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic, kafka.Message{Value: rnew}))
		got, err := st.repo.LatestByUUID(st.ctx, fresh.UUID)
		require.NoError(t, err)
		return got != nil
	})

	gotOld, err := st.repo.LatestByUUID(st.ctx, old.UUID)
	require.NoError(t, err)
	require.Nil(t, gotOld)
}

// 4) At-least-once: сбой без продвижения оффсета — передоставка после перезапуска
func TestKafka_Redelivery_AfterRestart_TC(t *testing.T) {
	st := newStack(t)

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-redelivery-" + safe(t))
			require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

			ad, raw := testutil.MakeAdJSON()
			require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic, kafka.Message{Value: raw}))

			// Фаза 1: обработчик всегда падает => коммитится позиция самой записи
			failing := &countingHandler{err: errors.New("warehouse is down")}
			loopFail := st.newLoop(t, driver, topic, group, "first", failing, health.New(1000))
			runCtx, cancelRun := context.WithCancel(st.ctx)
			errCh := runLoop(runCtx, t, loopFail)

			waitFor(t, 20*time.Second, "record was not fetched", func() bool { return failing.calls() > 0 })
			cancelRun()
			<-errCh
			_ = loopFail.Close()

			// Фаза 2: та же группа, рабочий сервис
			loopOK := st.newLoop(t, driver, topic, group, "first", st.service(), health.New(3))
			runLoop(st.ctx, t, loopOK)

			waitFor(t, 30*time.Second, "ad "+ad.UUID+" not redelivered in time", func() bool {
				got, err := st.repo.LatestByUUID(st.ctx, ad.UUID)
				require.NoError(t, err)
				return got != nil
			})
		})
	}
}

// 5) Временный сбой без перезапуска: запись перечитывается тем же циклом,
// и она, и следующая за ней сохраняются (оба драйвера)
func TestKafka_TransientFault_RedeliveredInProcess_TC(t *testing.T) {
	st := newStack(t)

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-transient-" + safe(t))
			require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

			first, raw1 := testutil.MakeAdJSON()
			second, raw2 := testutil.MakeAdJSON()
			require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic,
				kafka.Message{Value: raw1},
				kafka.Message{Value: raw2},
			))

			flaky := &countingHandler{failFirst: 1, err: errors.New("warehouse is down"), next: st.service()}
			gate := health.New(3)
			loop := st.newLoop(t, driver, topic, group, "first", flaky, gate)
			errCh := runLoop(st.ctx, t, loop)

			for _, uuid := range []string{first.UUID, second.UUID} {
				waitFor(t, 30*time.Second, "ad "+uuid+" not saved after transient fault", func() bool {
					got, err := st.repo.LatestByUUID(st.ctx, uuid)
					require.NoError(t, err)
					return got != nil
				})
			}
			require.True(t, gate.IsHealthy())
			require.GreaterOrEqual(t, gate.Votes(), int64(1))
			requireNoExit(t, errCh)
		})
	}
}

// 6) Повторное чтение тех же позиций (новая группа с начала) не плодит строки
func TestKafka_Replay_IsIdempotent_TC(t *testing.T) {
	st := newStack(t)

	topic, group := testutil.UniqueTopicAndGroup(st.kf.BaseTopic + "-replay-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(st.ctx, st.kf.Brokers[0], topic))

	ad, raw := testutil.MakeAdJSON()
	require.NoError(t, testutil.Produce(st.ctx, st.kf.Brokers, topic, kafka.Message{Value: raw}))

	first := st.newLoop(t, ikafka.DriverKafkaGo, topic, group, "first", st.service(), health.New(3))
	runLoop(st.ctx, t, first)
	waitFor(t, 20*time.Second, "ad not saved in time", func() bool {
		got, err := st.repo.LatestByUUID(st.ctx, ad.UUID)
		require.NoError(t, err)
		return got != nil
	})
	_ = first.Close()

	// вторая группа читает топик с начала
	replay := &countingHandler{next: st.service()}
	second := st.newLoop(t, ikafka.DriverSarama, topic, group+"-replay", "first", replay, health.New(3))
	runLoop(st.ctx, t, second)
	waitFor(t, 30*time.Second, "replay did not reach the record", func() bool { return replay.calls() > 0 })

	hist, err := st.repo.HistoryByUUID(st.ctx, ad.UUID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
}

// -----------------функции-помощники-----------------

type stack struct {
	ctx  context.Context
	repo *pgrepo.AdHistoryRepository
	log  ports.Logger
	kf   *testutil.KafkaEnv
}

func newStack(t *testing.T) *stack {
	t.Helper()

	// Длинный контекст — на контейнеры
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "ads-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// Короткий контекст — сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	return &stack{ctx: ctx, repo: pgrepo.NewAdHistoryRepository(pg.Pool), log: logg, kf: kf}
}

func (s *stack) service() *usecase.AdService {
	return usecase.NewAdService(s.repo, cachemem.NewLRUCacheTTL(100, time.Minute), s.log, validate.NewAdValidator())
}

func (s *stack) newLoop(t *testing.T, driver, topic, group, start string, h ports.RecordHandler, gate ports.HealthGate) *ikafka.Loop {
	t.Helper()
	loop, err := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Driver:         driver,
		Brokers:        s.kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    start,
		Version:        "2.8.0",
		InstanceID:     "itest",
		PollTimeout:    time.Second,
		ProcessTimeout: 5 * time.Second,
		CommitTimeout:  5 * time.Second,
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       500 * time.Millisecond,
	}, h, gate, s.log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = loop.Close() })
	return loop
}

func runLoop(ctx context.Context, t *testing.T, loop *ikafka.Loop) <-chan error {
	t.Helper()
	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(runCtx) }()
	return errCh
}

func waitFor(t *testing.T, timeout time.Duration, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func requireNoExit(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		t.Fatalf("loop exited unexpectedly: %v", err)
	default:
	}
}

// countingHandler — считает вызовы; возвращает err или делегирует next.
// При failFirst > 0 err возвращается только первые failFirst вызовов.
type countingHandler struct {
	err       error
	failFirst int
	next      ports.RecordHandler

	mu sync.Mutex
	n  int
}

func (h *countingHandler) HandleRecord(ctx context.Context, rec domain.Record) error {
	h.mu.Lock()
	h.n++
	n := h.n
	h.mu.Unlock()
	if h.err != nil && (h.failFirst == 0 || n <= h.failFirst) {
		return h.err
	}
	return h.next.HandleRecord(ctx, rec)
}

func (h *countingHandler) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
