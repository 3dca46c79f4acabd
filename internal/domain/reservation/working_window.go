package reservation

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// FirstHour and LastHour bound the bookable hour set (16:00..21:00).
const (
	FirstHour = 16
	LastHour  = 21
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WorkingWindow is a field's weekly open window. Start and end are not
// required to be ordered; an inverted window simply admits nothing.
type WorkingWindow struct {
	StartDay  int `json:"start_day"`
	StartHour int `json:"start_hour"`
	EndDay    int `json:"end_day"`
	EndHour   int `json:"end_hour"`
}

func WindowOf(f *models.Field) WorkingWindow {
	return WorkingWindow{
		StartDay:  f.StartWorkingDay,
		StartHour: f.StartWorkingHour,
		EndDay:    f.EndWorkingDay,
		EndHour:   f.EndWorkingHour,
	}
}

// IsDayInWindow compares plain ISO weekday numbers, no wraparound over Sunday.
func (w WorkingWindow) IsDayInWindow(day int) bool {
	return w.StartDay <= day && day <= w.EndDay
}

func (w WorkingWindow) IsHourInWindow(hour int) bool {
	return w.StartHour <= hour && hour <= w.EndHour
}

// ISOWeekday maps a date to Monday=1 .. Sunday=7.
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Hours lists the bookable hours in ascending order.
func Hours() []int {
	hours := make([]int, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

func IsBookableHour(hour int) bool {
	return hour >= FirstHour && hour <= LastHour
}

func IsValidDay(day int) bool {
	return day >= 1 && day <= 7
}

func DayName(day int) string {
	if !IsValidDay(day) {
		return ""
	}
	return dayNames[day-1]
}

func HourLabel(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// NormalizeDate drops the time component; reservations are keyed by calendar date.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(d), nil
}
