package repos

import "time"

// DayOf truncates a timestamp to its UTC calendar day, matching the date
// columns the repos filter on.
func DayOf(t time.Time) time.Time {
  y, m, d := t.UTC().Date()
  return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
