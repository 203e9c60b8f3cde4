package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategories returns the built-in category set.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food", Icon: "restaurant", Color: "#FF6B6B"},
		{ID: "transport", Name: "Transport", Icon: "car", Color: "#4ECDC4"},
		{ID: "shopping", Name: "Shopping", Icon: "bag", Color: "#45B7D1"},
		{ID: "entertainment", Name: "Entertainment", Icon: "film", Color: "#96CEB4"},
		{ID: "bills", Name: "Bills", Icon: "receipt", Color: "#FFEAA7"},
		{ID: "health", Name: "Health", Icon: "medkit", Color: "#DDA0DD"},
		{ID: "education", Name: "Education", Icon: "school", Color: "#98D8C8"},
		{ID: "other", Name: "Other", Icon: "ellipsis", Color: "#B0B0B0"},
	}
}

// LoadCategories reads a YAML list of categories from path.
// A missing file yields the defaults. Entries with a blank ID are skipped and
// later duplicates of an ID are dropped.
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCategories(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	cats := dedupeCategories(doc.Categories)
	if len(cats) == 0 {
		return DefaultCategories(), nil
	}
	if err := ValidateCategories(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// FindCategory returns the category with id, if present.
func FindCategory(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func dedupeCategories(in []Category) []Category {
	seen := map[string]struct{}{}
	out := make([]Category, 0, len(in))
	for _, c := range in {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	// Input order is kept.
	return out
}
