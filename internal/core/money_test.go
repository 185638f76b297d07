package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12.345", 1235, false}, // half-up on the third decimal
		{"12.344", 1234, false},
		{"100", 10000, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"12.3.4", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Cents: 1230}).String(); s != "12.30" {
		t.Errorf("expected 12.30, got %s", s)
	}
	if s := (Money{Cents: 5}).String(); s != "0.05" {
		t.Errorf("expected 0.05, got %s", s)
	}
}

func TestMoneyMulRate(t *testing.T) {
	rates := DefaultRates()
	// 100.00 EUR at 1.09 -> 109.00
	got := Money{Cents: 10000}.MulRate(rates[EUR])
	if got.Cents != 10900 {
		t.Errorf("expected 10900, got %d", got.Cents)
	}
	// 50.00 INR at 0.012 -> 0.60
	got = Money{Cents: 5000}.MulRate(rates[INR])
	if got.Cents != 60 {
		t.Errorf("expected 60, got %d", got.Cents)
	}
}

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want Currency
	}{
		{"USD", USD}, {"$", USD},
		{"Euro", EUR}, {"EUR", EUR}, {"€", EUR},
		{"GBP", GBP}, {"£", GBP},
		{"INR", INR}, {"₹", INR},
		{"", ""},
	}
	for _, tc := range cases {
		got, err := ParseCurrency(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
	if _, err := ParseCurrency("yen"); err == nil {
		t.Error("expected error for unsupported currency")
	}
}
