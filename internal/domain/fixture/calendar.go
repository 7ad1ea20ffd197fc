package fixture

import "time"

// NextSaturday returns the first Saturday strictly after now. A call made on
// a Saturday rolls forward a full week.
func NextSaturday(now time.Time) time.Time {
	days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
}

// NextWeekendDate is NextSaturday formatted as YYYY-MM-DD.
func NextWeekendDate(now time.Time) string {
	return NextSaturday(now).Format(DateLayout)
}
