package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.5", 50, true},
		{".5", 50, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{" 7 ", 700, true},
		{"", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"92233720368547759", 0, false}, // would overflow cents
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestDecimalString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{500, "5"},
		{1250, "12.5"},
		{1234, "12.34"},
		{5, "0.05"},
		{0, "0"},
		{-70000, "-700"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).DecimalString(); got != tc.want {
			t.Fatalf("DecimalString(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestDisplayString(t *testing.T) {
	if got := (Money{Cents: 1234}).DisplayString(); got != "$12.34" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -70000}).DisplayString(); got != "-$700.00" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: 5}).DisplayString(); got != "$0.05" {
		t.Fatalf("got %q", got)
	}
}
