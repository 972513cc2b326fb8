package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shaiso/Relay/internal/domain"
)

// NextDue вычисляет следующий запуск schedule после момента from.
//
// Cron-выражения трактуются в timezone schedule (невалидная timezone
// деградирует до UTC), интервалы — как простое смещение от from.
// Результат всегда в UTC, в таком виде он и хранится в next_due_at.
func NextDue(sched *domain.Schedule, from time.Time) (time.Time, error) {
	local := from.In(location(sched.Timezone))

	switch {
	case sched.IsCron():
		spec, err := cron.ParseStandard(sched.CronExpr)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse cron expression %q: %w", sched.CronExpr, err)
		}
		return spec.Next(local).UTC(), nil

	case sched.IsInterval():
		return local.Add(time.Duration(sched.IntervalSec) * time.Second).UTC(), nil

	default:
		return time.Time{}, fmt.Errorf("schedule has neither cron_expr nor interval_sec")
	}
}

// InitialNextDue вычисляет первый запуск только что созданного или
// обновлённого schedule.
func InitialNextDue(sched *domain.Schedule) (time.Time, error) {
	return NextDue(sched, time.Now())
}

// ValidateCron проверяет cron-выражение до записи schedule в БД.
// Принимается стандартный 5-полевой формат и descriptors (@daily, @every 1h).
func ValidateCron(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

func location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
