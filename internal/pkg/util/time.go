package util

import "time"

// GetMidnight 返回 t 所在本地日的零点
func GetMidnight(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// DayWindow 返回 t 所在本地日的起止时刻 [dayStart, dayEnd]
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := GetMidnight(t)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
