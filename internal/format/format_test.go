package format

import (
	"errors"
	"math"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatCurrencyDefaultLocale(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		code   string
		want   string
	}{
		{name: "two fraction digits", amount: 25.5, code: "USD", want: "$25.50"},
		{name: "default currency", amount: 25.5, code: "", want: "$25.50"},
		{name: "grouping", amount: 1234.5, code: "USD", want: "$1,234.50"},
		{name: "large grouping", amount: 1234567.891, code: "USD", want: "$1,234,567.89"},
		{name: "zero", amount: 0, code: "USD", want: "$0.00"},
		{name: "negative", amount: -5, code: "USD", want: "-$5.00"},
		{name: "negative rounding to zero", amount: -0.001, code: "USD", want: "$0.00"},
		{name: "lowercase code", amount: 3, code: "usd", want: "$3.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatCurrency(tt.amount, tt.code)
			if err != nil {
				t.Fatalf("FormatCurrency() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestFormatCurrencyOtherLocale(t *testing.T) {
	f, err := New("it-IT")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := f.FormatCurrency(1234.5, "EUR")
	if err != nil {
		t.Fatalf("FormatCurrency() error = %v", err)
	}
	if !strings.HasPrefix(got, "1.234,50") {
		t.Errorf("FormatCurrency() = %q, want it-IT grouping 1.234,50", got)
	}
	if !strings.HasSuffix(got, "€") {
		t.Errorf("FormatCurrency() = %q, want trailing euro sign", got)
	}
}

func TestFormatCurrencyGerman(t *testing.T) {
	f := MustNew("de-DE")
	got, err := f.FormatCurrency(25.5, "EUR")
	if err != nil {
		t.Fatalf("FormatCurrency() error = %v", err)
	}
	if got != "25,50 €" {
		t.Errorf("FormatCurrency() = %q, want 25,50 €", got)
	}
}

func TestHasLocaleTable(t *testing.T) {
	for locale, want := range map[string]bool{
		"en-US":         true,
		"it":            true,
		"de-AT":         true,
		"pt-BR":         true,
		"ja-JP":         false,
		"not a locale!": false,
	} {
		if got := HasLocaleTable(locale); got != want {
			t.Errorf("HasLocaleTable(%q) = %v, want %v", locale, got, want)
		}
	}
}

func TestFormatCurrencyErrors(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		code    string
		wantErr error
	}{
		{name: "NaN", amount: math.NaN(), code: "USD", wantErr: ErrInvalidAmount},
		{name: "positive infinity", amount: math.Inf(1), code: "USD", wantErr: ErrInvalidAmount},
		{name: "negative infinity", amount: math.Inf(-1), code: "USD", wantErr: ErrInvalidAmount},
		{name: "unknown code", amount: 1, code: "ZZZ1", wantErr: ErrInvalidCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatCurrency(tt.amount, tt.code)
			if err == nil {
				t.Fatalf("expected error, got %q", got)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got != "" {
				t.Fatalf("expected empty string on error, got %q", got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	got, err := defaultFormatter.FormatAmount(decimal.RequireFromString("19.9"), "USD")
	if err != nil {
		t.Fatalf("FormatAmount() error = %v", err)
	}
	if got != "$19.90" {
		t.Fatalf("FormatAmount() = %q, want $19.90", got)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 8, 3, 14, 5, 9, 0, time.UTC)
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "03/08/2025"},
		{"dd/MM/yyyy", "03/08/2025"},
		{"d/M/yy", "3/8/25"},
		{"yyyy-MM-dd HH:mm:ss", "2025-08-03 14:05:09"},
		{"EEEE, d MMMM yyyy", "Sunday, 3 August 2025"},
		{"EEE d MMM", "Sun 3 Aug"},
		{"h:mm a", "2:05 PM"},
		{"'Week of' dd/MM", "Week of 03/08"},
		{"dd 'o''clock'", "03 o'clock"},
		{"''yy", "'25"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := FormatDate(ts, tt.pattern)
			if err != nil {
				t.Fatalf("FormatDate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestFormatDateLocaleNames(t *testing.T) {
	f := MustNew("it-IT")
	got, err := f.FormatDate(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), "EEEE d MMMM yyyy")
	if err != nil {
		t.Fatalf("FormatDate() error = %v", err)
	}
	if got != "lunedì 10 febbraio 2025" {
		t.Fatalf("FormatDate() = %q", got)
	}

	// No table for German: English names.
	de := MustNew("de-DE")
	got, err = de.FormatDate(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), "MMMM")
	if err != nil {
		t.Fatalf("FormatDate() error = %v", err)
	}
	if got != "February" {
		t.Fatalf("FormatDate() fallback = %q, want February", got)
	}
}

func TestFormatDateErrors(t *testing.T) {
	ts := time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		t       time.Time
		pattern string
		wantErr error
	}{
		{"zero time", time.Time{}, "dd/MM/yyyy", ErrInvalidDate},
		{"unsupported letter", ts, "dd/MM/yyyy Q", ErrInvalidPattern},
		{"unterminated quote", ts, "dd 'oops", ErrInvalidPattern},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FormatDate(tc.t, tc.pattern)
			var fe *FormatError
			if !errors.As(err, &fe) || !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected FormatError wrapping %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewInvalidLocale(t *testing.T) {
	if _, err := New("not a locale!"); !errors.Is(err, ErrInvalidLocale) {
		t.Fatalf("expected ErrInvalidLocale, got %v", err)
	}
}

func TestLoadLocalesValidation(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": &fstest.MapFile{Data: []byte("locale: en\nmonths: [a]\n")},
	}
	if _, err := loadLocales(fsys); err == nil {
		t.Fatal("expected error for incomplete table")
	}

	if _, err := loadLocales(fstest.MapFS{}); err == nil {
		t.Fatal("expected error for empty filesystem")
	}
}
