package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/davomat/davomat-backend-go/internal/pkg/lock"
)

// DayResetter clears every employee's attendance state for a new day.
type DayResetter interface {
	ResetDay(ctx context.Context) (int64, error)
}

type AttendanceJobs struct {
	resetter DayResetter
	locker   lock.Locker
	loc      *time.Location
	now      func() time.Time
}

func NewAttendanceJobs(resetter DayResetter, locker lock.Locker, loc *time.Location) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		resetter: resetter,
		locker:   locker,
		loc:      loc,
		now:      time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, resetSpec string) error {
	return scheduler.AddJob("reset_daily_status", resetSpec, j.ResetDailyStatus)
}

// resetLockTTL outlives the window so a late-starting replica cannot reset
// the same day twice.
const resetLockTTL = 26 * time.Hour

func resetLockKey(day string) string {
	return "attendance:reset:" + day
}

// ResetDailyStatus runs the daily reset at most once per local calendar day.
func (j *AttendanceJobs) ResetDailyStatus(ctx context.Context) error {
	day := j.now().In(j.loc).Format("2006-01-02")
	key := resetLockKey(day)

	token, ok, err := j.locker.TryAcquire(ctx, key, resetLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire reset lock: %w", err)
	}
	if !ok {
		slog.Info("Cron: Daily reset already done for this day, skipping", "day", day)
		return nil
	}

	slog.Info("Cron: Starting daily attendance reset", "day", day)

	count, err := j.resetter.ResetDay(ctx)
	if err != nil {
		// Let the next tick or replica retry.
		if relErr := j.locker.Release(ctx, key, token); relErr != nil {
			slog.Warn("Cron: Failed to release reset lock", "day", day, "error", relErr)
		}
		return fmt.Errorf("failed to reset attendance: %w", err)
	}

	slog.Info("Cron: Daily attendance reset completed", "day", day, "employees", count)
	return nil
}
