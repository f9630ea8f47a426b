package worker

import (
	"context"
	"taskManager/internal/logger"
	"time"

	"go.uber.org/zap"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthWorker периодически проверяет доступность хранилища,
// чтобы обрыв соединения был виден в логах до первого запроса клиента
type HealthWorker struct {
	store    HealthChecker
	interval time.Duration
}

func NewHealthWorker(store HealthChecker, interval time.Duration) *HealthWorker {
	return &HealthWorker{store: store, interval: interval}
}

func (w *HealthWorker) Run(ctx context.Context) {
	logger.Info("Worker: Запуск проверки хранилища", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker: Остановка проверки хранилища")
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, time.Second*5)
			if err := w.store.HealthCheck(probeCtx); err != nil {
				logger.Warn("Worker: Хранилище недоступно", zap.Error(err))
			}
			cancel()
		}
	}
}
