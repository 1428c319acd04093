package lelang

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
)

func TestExtendDeadline(t *testing.T) {
	deadline := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)
	window := 120 * time.Second

	cases := []struct {
		name   string
		before time.Duration
		want   time.Time
	}{
		{"outside window", 121 * time.Second, deadline},
		{"exactly window left", 120 * time.Second, deadline},
		{"inside window", 90 * time.Second, deadline.Add(30 * time.Second)},
		{"last second", time.Second, deadline.Add(119 * time.Second)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtendDeadline(deadline.Add(-tc.before), deadline, window)
			check.Equal(t, tc.want, got)
			check.False(t, got.Before(deadline))
		})
	}
}

func TestExtendDeadlineDisabledWindow(t *testing.T) {
	deadline := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)
	check.Equal(t, deadline, ExtendDeadline(deadline.Add(-time.Second), deadline, 0))
}
