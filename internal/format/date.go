package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate renders t using an LDML-style pattern (dd/MM/yyyy when empty).
//
// Supported fields: d dd M MM MMM MMMM yy yyyy E EEE EEEE H HH h hh m mm s ss a.
// Text in single quotes is copied literally and '' is a single quote. Other
// ASCII letters are rejected.
func (f *Formatter) FormatDate(t time.Time, pattern string) (string, error) {
	if t.IsZero() {
		return "", &FormatError{Op: "date", Input: pattern, Err: ErrInvalidDate}
	}
	if pattern == "" {
		pattern = DefaultDatePattern
	}

	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			end, lit, err := readQuoted(runes, i)
			if err != nil {
				return "", &FormatError{Op: "date", Input: pattern, Err: err}
			}
			b.WriteString(lit)
			i = end
		case isASCIILetter(r):
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			field, err := f.field(t, r, n)
			if err != nil {
				return "", &FormatError{Op: "date", Input: pattern, Err: err}
			}
			b.WriteString(field)
			i += n
		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}

func (f *Formatter) field(t time.Time, letter rune, n int) (string, error) {
	switch letter {
	case 'd':
		return pad(t.Day(), n), nil
	case 'M':
		switch {
		case n >= 4:
			return f.table.Months[t.Month()-1], nil
		case n == 3:
			return f.table.MonthsShort[t.Month()-1], nil
		default:
			return pad(int(t.Month()), n), nil
		}
	case 'y':
		if n == 2 {
			return pad(t.Year()%100, 2), nil
		}
		return pad(t.Year(), n), nil
	case 'E':
		if n >= 4 {
			return f.table.Days[t.Weekday()], nil
		}
		return f.table.DaysShort[t.Weekday()], nil
	case 'H':
		return pad(t.Hour(), n), nil
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, n), nil
	case 'm':
		return pad(t.Minute(), n), nil
	case 's':
		return pad(t.Second(), n), nil
	case 'a':
		if t.Hour() < 12 {
			return f.table.AM, nil
		}
		return f.table.PM, nil
	}
	return "", fmt.Errorf("%w: unsupported field %q", ErrInvalidPattern, strings.Repeat(string(letter), n))
}

// readQuoted reads a quoted literal starting at runes[start] == '\''.
// It returns the index after the closing quote.
func readQuoted(runes []rune, start int) (int, string, error) {
	if start+1 < len(runes) && runes[start+1] == '\'' {
		return start + 2, "'", nil
	}
	var b strings.Builder
	for i := start + 1; i < len(runes); i++ {
		if runes[i] != '\'' {
			b.WriteRune(runes[i])
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '\'' {
			b.WriteRune('\'')
			i++
			continue
		}
		return i + 1, b.String(), nil
	}
	return 0, "", fmt.Errorf("%w: unterminated quote", ErrInvalidPattern)
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
