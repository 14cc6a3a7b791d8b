// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"staffdir/pkg/logger"
)

// Константы для сообщений о завершении работы.
const (
	LogSignalReceived = "shutdown signal received"
	LogHookFailed     = "shutdown hook failed"
	LogTimeoutExpired = "shutdown timeout expired before all hooks completed"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем выполняет все хуки параллельно в рамках заданного timeout.
// Ошибки хуков логируются и не прерывают остальные хуки.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log(ctx).Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				logger.Log(hookCtx).Error(hookCtx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		logger.Log(hookCtx).Error(hookCtx, LogTimeoutExpired)
	}
}
