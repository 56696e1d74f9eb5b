package codec

import (
	"testing"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
)

func TestGenerateVerifyLimitedRoundTrip(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	rec, err := GenerateLimited("123456", 2, 30, clk)
	if err != nil {
		t.Fatalf("GenerateLimited: %v", err)
	}

	res, ok := VerifyLimited(rec.Text, "123456", clk)
	if !ok {
		t.Fatalf("VerifyLimited rejected a code just generated")
	}
	got, ok := res.Request.(model.Limited)
	if !ok {
		t.Fatalf("request type = %T", res.Request)
	}
	if got.Hours != 2 || got.Minutes != 30 {
		t.Fatalf("duration = %dh%dm, want 2h30m", got.Hours, got.Minutes)
	}
}

func TestLimitedExpiryBoundary(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	rec, err := GenerateLimited("123456", 2, 30, clk)
	if err != nil {
		t.Fatalf("GenerateLimited: %v", err)
	}

	before := clock.Fixed{Instant: rec.ExpiresAt.Add(-time.Second)}
	if _, ok := VerifyLimited(rec.Text, "123456", before); !ok {
		t.Fatalf("code should verify just before its deadline")
	}

	after := clock.Fixed{Instant: rec.ExpiresAt.Add(time.Second)}
	if _, ok := VerifyLimited(rec.Text, "123456", after); ok {
		t.Fatalf("code should not verify just after its deadline")
	}
}

func TestGenerateLimitedRejectsInvalidDuration(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	cases := []struct {
		hours, minutes int
	}{
		{0, 0},
		{-1, 0},
		{128, 0},
		{1, 15},
	}
	for _, c := range cases {
		if _, err := GenerateLimited("123456", c.hours, c.minutes, clk); err == nil {
			t.Fatalf("GenerateLimited(%d,%d) should have been rejected", c.hours, c.minutes)
		}
	}
}

func TestGenerateLimitedAcceptsBoundaryDuration(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	if _, err := GenerateLimited("123456", 127, 30, clk); err != nil {
		t.Fatalf("GenerateLimited(127,30) should be accepted: %v", err)
	}
}
