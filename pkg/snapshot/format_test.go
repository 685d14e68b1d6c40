package snapshot

import (
	"math"
	"strings"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"integer", 1, "1"},
		{"negative integer", -42, "-42"},
		{"near integer above", 2.0000001, "2"},
		{"tiny negative", -0.0000001, "0"},
		{"relative tolerance", 90.00001, "90"},
		{"half", 2.5000003, "2.5"},
		{"tenth", 0.1, "0.1"},
		{"negative fraction", -3.25, "-3.25"},
		{"six digits", 123.456789, "123.456789"},
		{"rounded to six digits", 1.23456789, "1.234568"},
		{"small fraction", 0.00001, "0.00001"},
		{"NaN", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloat(tt.in); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFloat_NoTrailingZeros(t *testing.T) {
	for i := -2000; i <= 2000; i++ {
		v := float64(i) * 0.0137
		got := FormatFloat(v)
		if strings.HasSuffix(got, ".") {
			t.Fatalf("FormatFloat(%v) = %q ends with '.'", v, got)
		}
		if strings.Contains(got, ".") && strings.HasSuffix(got, "0") {
			t.Fatalf("FormatFloat(%v) = %q has trailing zero", v, got)
		}
		if got == "-0" {
			t.Fatalf("FormatFloat(%v) = -0", v)
		}
	}
}

func TestFormatFloat_Integers(t *testing.T) {
	for _, v := range []float64{-1000, -7, -1, 0, 1, 3, 360, 1e6} {
		got := FormatFloat(v)
		if strings.Contains(got, ".") {
			t.Errorf("FormatFloat(%v) = %q, want plain integer", v, got)
		}
	}
}
