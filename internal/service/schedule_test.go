package service

import (
	"testing"
	"time"
)

func TestDeliveryDateFor(t *testing.T) {
	day := func(d int) string {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	tests := []struct {
		name       string
		now        time.Time
		cutoffHour int
		want       string
	}{
		{
			name:       "just before cutoff ships next day",
			now:        time.Date(2025, 3, 10, 22, 59, 59, 0, time.UTC),
			cutoffHour: 23,
			want:       day(11),
		},
		{
			name:       "exactly at cutoff ships in two days",
			now:        time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
			cutoffHour: 23,
			want:       day(12),
		},
		{
			name:       "after cutoff ships in two days",
			now:        time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC),
			cutoffHour: 23,
			want:       day(12),
		},
		{
			name:       "morning order before a midday cutoff",
			now:        time.Date(2025, 3, 10, 11, 59, 0, 0, time.UTC),
			cutoffHour: 12,
			want:       day(11),
		},
		{
			name:       "midnight cutoff always takes the two-day path",
			now:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			cutoffHour: 0,
			want:       day(12),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateString(DeliveryDateFor(tt.now, tt.cutoffHour))
			if got != tt.want {
				t.Errorf("DeliveryDateFor(%v, %d) = %s, want %s", tt.now, tt.cutoffHour, got, tt.want)
			}
		})
	}
}
