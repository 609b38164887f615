package clock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lending-engine/internal/pkg/apperrors"
)

// Clock supplies the business date the lending domain treats as "today".
// The business date is simulated independently of wall-clock time, so
// engines must never call time.Now for due/overdue decisions.
type Clock interface {
	BusinessDate(ctx context.Context) (time.Time, error)
}

// SystemDateStore is the persistence boundary for the single system date row.
type SystemDateStore interface {
	GetSystemDate(ctx context.Context) (time.Time, error)
	UpdateSystemDate(ctx context.Context, date time.Time, updatedBy string) error
}

type SystemDateClock struct {
	store  SystemDateStore
	logger *slog.Logger
}

func NewSystemDateClock(store SystemDateStore, logger *slog.Logger) *SystemDateClock {
	return &SystemDateClock{store: store, logger: logger.With("component", "SystemDateClock")}
}

func (c *SystemDateClock) BusinessDate(ctx context.Context) (time.Time, error) {
	date, err := c.store.GetSystemDate(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			today := Truncate(time.Now())
			c.logger.WarnContext(ctx, "No system date row found, falling back to wall-clock date", "date", today)
			return today, nil
		}
		return time.Time{}, err
	}
	return Truncate(date), nil
}

// Advance moves the business date to today's wall-clock date.
func (c *SystemDateClock) Advance(ctx context.Context, updatedBy string) (time.Time, error) {
	today := Truncate(time.Now())
	if err := c.store.UpdateSystemDate(ctx, today, updatedBy); err != nil {
		return time.Time{}, err
	}
	c.logger.InfoContext(ctx, "System date advanced", "date", today, "updated_by", updatedBy)
	return today, nil
}

// Set pins the business date, used by operators to simulate a day.
func (c *SystemDateClock) Set(ctx context.Context, date time.Time, updatedBy string) error {
	return c.store.UpdateSystemDate(ctx, Truncate(date), updatedBy)
}

// Fixed returns a Clock that always reports the given date. Test helper.
func Fixed(date time.Time) Clock {
	return fixedClock{date: Truncate(date)}
}

type fixedClock struct {
	date time.Time
}

func (f fixedClock) BusinessDate(context.Context) (time.Time, error) {
	return f.date, nil
}

// Truncate drops the time-of-day portion in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
