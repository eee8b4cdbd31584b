package service

import (
	"testing"
	"time"
)

func TestRefundFraction_Tiers(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		remaining time.Duration
		want      float64
	}{
		{"well before departure", 72 * time.Hour, 1.0},
		{"just over a day", 25 * time.Hour, 1.0},
		{"exactly 24h", 24 * time.Hour, 1.0},
		{"just under 24h", 24*time.Hour - time.Minute, 0.5},
		{"half a day", 13 * time.Hour, 0.5},
		{"exactly 12h", 12 * time.Hour, 0.5},
		{"just under 12h", 12*time.Hour - time.Minute, 0.0},
		{"last minute", 30 * time.Minute, 0.0},
		{"already departed", -time.Hour, 0.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := RefundFraction(now.Add(tc.remaining), now)
			if got != tc.want {
				t.Errorf("RefundFraction(%v remaining) = %.1f, want %.1f", tc.remaining, got, tc.want)
			}
		})
	}
}
