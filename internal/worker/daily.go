// Package worker фоновые задачи по расписанию
package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Job задача, запускаемая воркером
type Job func(ctx context.Context) error

// Daily запускает задачу раз в сутки в заданное время в зоне loc.
// Запуски идут последовательно и не пересекаются. С Locker задача
// выполняется одной репликой на календарную дату.
type Daily struct {
	name   string
	runAt  types.TimeString
	loc    *time.Location
	job    Job
	locker Locker
	clock  Clock
	logger Logger
}

// NewDaily создает воркер. locker может быть nil.
func NewDaily(name string, runAt types.TimeString, loc *time.Location, job Job, locker Locker, logger Logger) *Daily {
	if loc == nil {
		loc = time.UTC
	}
	return &Daily{
		name:   name,
		runAt:  runAt,
		loc:    loc,
		job:    job,
		locker: locker,
		clock:  realClock{},
		logger: logger,
	}
}

// WithClock подменяет часы
func (d *Daily) WithClock(c Clock) *Daily {
	d.clock = c
	return d
}

// Run блокируется до отмены ctx
func (d *Daily) Run(ctx context.Context) {
	d.logger.Info("Worker %s: scheduled daily at %s %s", d.name, d.runAt, d.loc)

	for {
		next := NextRun(d.clock.Now(), d.runAt, d.loc)
		wait := next.Sub(d.clock.Now())
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			d.logger.Info("Worker %s: stopped", d.name)
			return
		case <-d.clock.After(wait):
		}

		d.RunOnce(ctx, next)
	}
}

// RunOnce выполняет задачу за дату запуска at
func (d *Daily) RunOnce(ctx context.Context, at time.Time) {
	runDate := at.In(d.loc).Format(domain.DateFormat)

	if d.locker != nil {
		handle, ok, err := d.locker.TryAcquire(ctx, d.name+":"+runDate)
		if err != nil {
			d.logger.Error("Worker %s: failed to acquire lock for %s: %v", d.name, runDate, err)
			return
		}
		if !ok {
			d.logger.Info("Worker %s: run for %s already taken by another instance", d.name, runDate)
			return
		}

		if err := d.execute(ctx, runDate); err != nil {
			// отдаем дату другой реплике или следующей попытке
			if relErr := d.locker.Release(ctx, handle); relErr != nil {
				d.logger.Warn("Worker %s: failed to release lock for %s: %v", d.name, runDate, relErr)
			}
		}
		return
	}

	_ = d.execute(ctx, runDate)
}

func (d *Daily) execute(ctx context.Context, runDate string) error {
	started := d.clock.Now()
	d.logger.Info("Worker %s: run for %s started", d.name, runDate)

	if err := d.job(ctx); err != nil {
		d.logger.Error("Worker %s: run for %s failed: %v", d.name, runDate, err)
		return err
	}

	d.logger.Info("Worker %s: run for %s finished in %s", d.name, runDate, d.clock.Now().Sub(started))
	return nil
}

// NextRun ближайший момент runAt в зоне loc строго после now
func NextRun(now time.Time, runAt types.TimeString, loc *time.Location) time.Time {
	local := now.In(loc)
	minutes := runAt.Minutes()

	next := time.Date(local.Year(), local.Month(), local.Day(), minutes/60, minutes%60, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, minutes/60, minutes%60, 0, 0, loc)
	}
	return next
}
