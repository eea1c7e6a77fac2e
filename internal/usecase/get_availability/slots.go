package get_availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// startTimes перечисляет времена начала внутри окон с шагом step минут.
// Окно полуоткрытое: время закрытия не предлагается. Для сегодняшней даты
// прошедшие времена отбрасываются.
func startTimes(windows []domain.Schedule, step int, date, now time.Time) []types.TimeString {
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}

	seen := make(map[types.TimeString]struct{})
	result := make([]types.TimeString, 0)

	for _, w := range windows {
		for current := w.Start; current.IsBefore(w.End); {
			if _, ok := seen[current]; !ok {
				seen[current] = struct{}{}
				result = append(result, current)
			}

			next, err := current.AddMinutes(step)
			if err != nil {
				// шаг вышел за полночь
				break
			}
			current = next
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].IsBefore(result[j]) })

	if !domain.SameDate(date, now) {
		return result
	}

	nowTime := types.NewTimeString(now)
	upcoming := make([]types.TimeString, 0, len(result))
	for _, t := range result {
		if !t.IsBefore(nowTime) {
			upcoming = append(upcoming, t)
		}
	}
	return upcoming
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
