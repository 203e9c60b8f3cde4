// Package format renders amounts and dates for a single application locale.
//
// Number grouping and currency symbols come from golang.org/x/text; month and
// day names come from the embedded locale tables. Invalid input is reported as
// a *FormatError, never as an empty string.
package format

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale      = "en-US"
	DefaultCurrency    = "USD"
	DefaultDatePattern = "dd/MM/yyyy"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidPattern  = errors.New("invalid date pattern")
	ErrInvalidLocale   = errors.New("invalid locale")
)

// FormatError describes input that could not be rendered.
type FormatError struct {
	Op    string // "currency" or "date"
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s %q: %v", e.Op, e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Formatter renders values under one fixed locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	table   *localeTable
}

// New creates a Formatter for a BCP 47 locale such as "en-US" or "it-IT".
// Languages without an embedded name table use English names.
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
	}
	base, _ := tag.Base()
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		table:   tableFor(base.String()),
	}, nil
}

// MustNew is like New but panics on an invalid locale.
func MustNew(locale string) *Formatter {
	f, err := New(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the locale tag the formatter was built for.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// FormatCurrency renders amount with grouping, exactly two fraction digits and
// the symbol for code (USD when empty).
func (f *Formatter) FormatCurrency(amount float64, code string) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", &FormatError{Op: "currency", Input: fmt.Sprint(amount), Err: ErrInvalidAmount}
	}
	unit, err := ParseCurrency(code)
	if err != nil {
		return "", err
	}

	sign := ""
	if amount < 0 {
		amount = -amount
		// Amounts that round to zero print without a sign.
		if math.Round(amount*100) != 0 {
			sign = "-"
		}
	}
	digits := f.printer.Sprint(number.Decimal(amount, number.Scale(2)))

	symbol := f.printer.Sprint(currency.Symbol(unit))
	if symbol == "" {
		symbol = unit.String()
	}

	sep := ""
	if f.table.Currency.Space {
		sep = " "
	}
	if f.table.Currency.Position == SymbolSuffix {
		return sign + digits + sep + symbol, nil
	}
	return sign + symbol + sep + digits, nil
}

// ParseCurrency resolves an ISO 4217 code, case-insensitively. An empty code
// means DefaultCurrency.
func ParseCurrency(code string) (currency.Unit, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, &FormatError{Op: "currency", Input: code, Err: ErrInvalidCurrency}
	}
	return unit, nil
}

// FormatAmount renders a decimal amount like FormatCurrency.
func (f *Formatter) FormatAmount(amount decimal.Decimal, code string) (string, error) {
	v, _ := amount.Float64()
	return f.FormatCurrency(v, code)
}

var defaultFormatter = MustNew(DefaultLocale)

// FormatCurrency formats with the default en-US formatter.
func FormatCurrency(amount float64, code string) (string, error) {
	return defaultFormatter.FormatCurrency(amount, code)
}

// ValidatePattern reports whether pattern is a date pattern FormatDate accepts.
func ValidatePattern(pattern string) error {
	_, err := defaultFormatter.FormatDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), pattern)
	return err
}

// FormatDate formats with the default en-US formatter.
func FormatDate(t time.Time, pattern string) (string, error) {
	return defaultFormatter.FormatDate(t, pattern)
}
