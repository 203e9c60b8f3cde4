package format

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

const fallbackLocale = "en"

// CurrencyPosition places the currency symbol around the number.
type CurrencyPosition string

const (
	SymbolPrefix CurrencyPosition = "prefix"
	SymbolSuffix CurrencyPosition = "suffix"
)

// localeTable holds the names a pattern can request for one language.
type localeTable struct {
	Locale      string   `yaml:"locale"`
	Months      []string `yaml:"months"`
	MonthsShort []string `yaml:"months_short"`
	Days        []string `yaml:"days"`
	DaysShort   []string `yaml:"days_short"`
	AM          string   `yaml:"am"`
	PM          string   `yaml:"pm"`
	Currency    struct {
		Position CurrencyPosition `yaml:"position"`
		Space    bool             `yaml:"space"`
	} `yaml:"currency"`
}

var localeTables = mustLoadLocales(localesFS)

func loadLocales(fsys fs.FS) (map[string]*localeTable, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale tables: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale tables found")
	}

	tables := make(map[string]*localeTable, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale table %s: %w", p, err)
		}
		var table localeTable
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse locale table %s: %w", p, err)
		}
		if err := table.validate(); err != nil {
			return nil, fmt.Errorf("locale table %s: %w", p, err)
		}
		if table.Locale == "" {
			table.Locale = strings.TrimSuffix(path.Base(p), ".yaml")
		}
		tables[table.Locale] = &table
	}
	if _, ok := tables[fallbackLocale]; !ok {
		return nil, fmt.Errorf("missing fallback locale %q", fallbackLocale)
	}
	return tables, nil
}

func mustLoadLocales(fsys fs.FS) map[string]*localeTable {
	tables, err := loadLocales(fsys)
	if err != nil {
		panic(fmt.Sprintf("load embedded locales: %v", err))
	}
	return tables
}

func (t *localeTable) validate() error {
	switch {
	case len(t.Months) != 12 || len(t.MonthsShort) != 12:
		return fmt.Errorf("expected 12 month names")
	case len(t.Days) != 7 || len(t.DaysShort) != 7:
		return fmt.Errorf("expected 7 day names")
	}
	switch t.Currency.Position {
	case "":
		t.Currency.Position = SymbolPrefix
	case SymbolPrefix, SymbolSuffix:
	default:
		return fmt.Errorf("invalid currency position %q", t.Currency.Position)
	}
	return nil
}

// tableFor returns the table for a base language, falling back to English.
func tableFor(base string) *localeTable {
	if t, ok := localeTables[base]; ok {
		return t
	}
	return localeTables[fallbackLocale]
}

// HasLocaleTable reports whether locale parses and its base language has an
// embedded table, so formatting does not fall back to English names.
func HasLocaleTable(locale string) bool {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	_, ok := localeTables[base.String()]
	return ok
}
