package steps

import (
	"time"
)

const dateLayout = "2006-01-02"

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// bucketStart is the wall-clock start of hourly bucket i on the day of dayStart.
// Built from clock hours so buckets keep local boundaries across DST changes.
func bucketStart(dayStart time.Time, i int, loc *time.Location) time.Time {
	y, m, d := dayStart.In(loc).Date()
	return time.Date(y, m, d, i*int(bucketWidth/time.Hour), 0, 0, 0, loc)
}
