package codec

import (
	"testing"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
)

func TestGenerateVerifyTemporaryRoundTrip(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	rec, err := GenerateTemporary("123456", clk)
	if err != nil {
		t.Fatalf("GenerateTemporary: %v", err)
	}

	res, ok := VerifyTemporary(rec.Text, "123456", clk)
	if !ok {
		t.Fatalf("VerifyTemporary rejected a code just generated")
	}
	if res.Variant != model.VariantTemporary {
		t.Fatalf("variant = %v", res.Variant)
	}
}

func TestVerifyTemporaryRejectsWrongKey(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	rec, err := GenerateTemporary("123456", clk)
	if err != nil {
		t.Fatalf("GenerateTemporary: %v", err)
	}
	if _, ok := VerifyTemporary(rec.Text, "654321", clk); ok {
		t.Fatalf("VerifyTemporary accepted a code under the wrong admin key")
	}
}

func TestVerifyTemporaryExpiresAfterValidity(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	rec, err := GenerateTemporary("123456", clk)
	if err != nil {
		t.Fatalf("GenerateTemporary: %v", err)
	}

	withinValidity := clock.Fixed{Instant: rec.ExpiresAt.Add(-1 * time.Second)}
	if _, ok := VerifyTemporary(rec.Text, "123456", withinValidity); !ok {
		t.Fatalf("code should still verify just before expiry")
	}

	afterValidity := clock.Fixed{Instant: rec.ExpiresAt.Add(1 * time.Second)}
	if _, ok := VerifyTemporary(rec.Text, "123456", afterValidity); ok {
		t.Fatalf("code should not verify after its validity window")
	}
}

func TestVerifyTemporaryRejectsMalformedText(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	if _, ok := VerifyTemporary("not-a-password", "123456", clk); ok {
		t.Fatalf("VerifyTemporary accepted malformed text")
	}
}

func TestGenerateTemporaryRejectsBadAdminKey(t *testing.T) {
	clk := clock.NewFixed("2024-06-01 12:00:00")
	if _, err := GenerateTemporary("12", clk); err == nil {
		t.Fatalf("GenerateTemporary should reject a too-short admin key")
	}
}
