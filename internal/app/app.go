package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Gunvolt24/adbridge/internal/ports"
)

// errConsumerStopped — консьюмер вернулся без ошибки, хотя контекст жив.
var errConsumerStopped = errors.New("consumer stopped")

// App — собранное приложение и его внешние интерфейсы (HTTP, консьюмеры по топикам).
type App struct {
	Logger          ports.Logger            // логгер
	HTTPServer      *http.Server            // HTTP-сервер
	Consumers       []ports.MessageConsumer // по одному циклу на топик
	gracefulTimeout time.Duration           // время ожидания завершения компонентов
}

// Run — запускает HTTP-сервер и консьюмеров; ждёт отмены контекста или остановки
// любого компонента и останавливает остальные.
// Возвращает ошибку компонента, из-за которого пришлось остановиться (например, kafka.ErrUnhealthy);
// штатная отмена контекста — nil.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(a.Consumers)+1)

	// Запуск консьюмеров.
	var wg sync.WaitGroup
	for i, c := range a.Consumers {
		wg.Add(1)
		go func(i int, c ports.MessageConsumer) {
			defer wg.Done()
			a.Logger.Infof(ctx, "kafka consumer #%d starting", i)
			err := c.Run(runCtx)
			if err == nil {
				err = errConsumerStopped
			}
			errCh <- err
		}(i, c)
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или остановки компонента.
	var cause error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Errorf(ctx, "background component failed: %v", err)
			cause = err
		}
	}
	cancel()

	gt := durationOr(a.gracefulTimeout, 5*time.Second)

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), gt)
	defer cancelShutdown()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка консьюмеров: Close безопасен после собственного закрытия цикла.
	for i, c := range a.Consumers {
		if err := c.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer #%d close error: %v", i, err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		a.Logger.Warnf(ctx, "consumers did not stop within %s", gt)
	}

	a.Logger.Infof(ctx, "service stopped")
	return cause
}
