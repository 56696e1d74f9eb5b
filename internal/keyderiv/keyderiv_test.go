package keyderiv

import (
	"sync"
	"testing"
)

func TestDeriveDeterministic(t *testing.T) {
	k1, err := Derive("123456")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	k2, err := Derive("123456")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("Derive is not deterministic: %#x vs %#x", k1, k2)
	}
}

func TestDeriveDiffersByDigit(t *testing.T) {
	k1, err := Derive("123456")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	k2, err := Derive("123457")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("Derive collided for neighboring admin keys")
	}
}

func TestDeriveRejectsLength(t *testing.T) {
	cases := []string{"", "1", "12", "123", "12345678901", "123456789012"}
	for _, c := range cases {
		if _, err := Derive(c); err == nil {
			t.Fatalf("Derive(%q) should have failed on length", c)
		}
	}
}

func TestDeriveAcceptsBoundaryLengths(t *testing.T) {
	if _, err := Derive("1234"); err != nil {
		t.Fatalf("4-digit key should be accepted: %v", err)
	}
	if _, err := Derive("1234567890"); err != nil {
		t.Fatalf("10-digit key should be accepted: %v", err)
	}
}

func TestDeriveRejectsNonDigits(t *testing.T) {
	if _, err := Derive("12a456"); err == nil {
		t.Fatalf("Derive should reject non-digit admin keys")
	}
}

func TestDeriveLeadingZerosSignificant(t *testing.T) {
	k1, err := Derive("0012")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	k2, err := Derive("1200")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("leading zeros were not treated as significant")
	}
}

func TestDeriveConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]uint64, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k, err := Derive("987654")
			if err != nil {
				t.Errorf("Derive: %v", err)
				return
			}
			results[i] = k
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		if r != results[0] {
			t.Fatalf("concurrent Derive calls disagreed")
		}
	}
}
