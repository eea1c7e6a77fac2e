package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// WeekdaySet набор дней недели, хранится битовой маской (бит = time.Weekday)
type WeekdaySet uint8

// weekdayTokens допустимые названия дней (после case folding)
var weekdayTokens = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,

	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miércoles": time.Wednesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sábado":    time.Saturday,
	"sabado":    time.Saturday,
}

// NewWeekdaySet строит набор из значений time.Weekday
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// ParseWeekdays строит набор из названий дней ("Monday", "lunes", "FRIDAY" ...)
func ParseWeekdays(tokens []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, token := range tokens {
		// cases.Caser не потокобезопасен, поэтому создается на каждый вызов
		key := cases.Fold().String(strings.TrimSpace(token))
		day, ok := weekdayTokens[key]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, token)
		}
		s |= 1 << uint(day)
	}
	return s, nil
}

// Contains true, если день входит в набор
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s&(1<<uint(day)) != 0
}

// IsEmpty true, если в наборе нет ни одного дня
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Tokens возвращает английские названия дней, начиная с понедельника
func (s WeekdaySet) Tokens() []string {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	tokens := make([]string, 0, len(order))
	for _, day := range order {
		if s.Contains(day) {
			tokens = append(tokens, day.String())
		}
	}
	return tokens
}
