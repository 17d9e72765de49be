package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"10.004999", "10"},
		{"0.125", "0.13"},
		{"1234.5", "1234.5"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got := Round(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Round(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"whole percent", "18", "0.18"},
		{"fractional percent", "12.5", "0.125"},
		{"already decimal", "0.18", "0.18"},
		{"boundary one", "1", "1"},
		{"zero", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRate(decimal.RequireFromString(tt.in))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("NormalizeRate(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	got := MonthlyRate(decimal.RequireFromString("0.12"))
	if !got.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("MonthlyRate(0.12) = %s, want 0.01", got)
	}
}

func TestFraction(t *testing.T) {
	// 2.5% processing fee on 50,000 = 1,250.00
	got := Fraction(decimal.NewFromInt(50_000), decimal.RequireFromString("0.025"))
	if !got.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("Fraction = %s, want 1250", got)
	}

	// Rounding on the final result: 1000.555 * 0.1 = 100.0555 -> 100.06
	got = Fraction(decimal.RequireFromString("1000.555"), decimal.RequireFromString("0.1"))
	if !got.Equal(decimal.RequireFromString("100.06")) {
		t.Errorf("Fraction = %s, want 100.06", got)
	}
}
