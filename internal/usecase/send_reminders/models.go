package send_reminders

import "time"

// Config параметры обхода
type Config struct {
	// WindowDays сколько дней после сегодняшнего входит в окно (1 = сегодня и завтра)
	WindowDays int
	// Location зона, в которой определяется "сегодня"
	Location *time.Location
}

// Result итоги одного обхода
type Result struct {
	From time.Time
	To   time.Time

	Scanned        int // бронирований в окне
	Notified       int // сохраненных напоминаний
	DeliveryFailed int // из них письмо не ушло
	Failed         int // напоминание не сохранено
}
