package service

import "time"

// dateLayout is how delivery dates are stored and compared.
const dateLayout = "2006-01-02"

// DeliveryDateFor maps the current time to a delivery date using the daily
// cutoff rule: strictly before cutoffHour:00 the order ships next day,
// otherwise the day after. Exactly at the cutoff counts as after it.
func DeliveryDateFor(now time.Time, cutoffHour int) time.Time {
	if now.Hour() < cutoffHour {
		return now.AddDate(0, 0, 1)
	}
	return now.AddDate(0, 0, 2)
}

// DateString formats a time as a calendar date for storage and responses.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}
