package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/infra/lock"
)

// Locker межпроцессная блокировка запуска (nil = без блокировки)
type Locker interface {
	TryAcquire(ctx context.Context, name string) (*lock.Handle, bool, error)
	Release(ctx context.Context, h *lock.Handle) error
}

// Clock источник времени и таймеров
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
