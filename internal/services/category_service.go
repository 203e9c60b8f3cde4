package services

import (
	"context"
	"errors"
	"fmt"

	"taccuino/internal/core"
	"taccuino/internal/kv"
	"taccuino/internal/log"
)

const categoriesKey = "categories"

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService stores the category set as one list under a single key.
type CategoryService struct {
	categories kv.Typed[[]core.Category]
	seedFile   string
	logger     *log.Logger
}

// NewCategoryService creates the service. seedFile is an optional YAML file
// used by SeedDefaults in place of the built-in set.
func NewCategoryService(store *kv.Store, seedFile string, logger *log.Logger) *CategoryService {
	if logger == nil {
		logger = log.Default(log.ComponentCategory)
	}
	return &CategoryService{
		categories: kv.NewTyped[[]core.Category](store),
		seedFile:   seedFile,
		logger:     logger,
	}
}

// SeedDefaults writes the initial category set when none is stored yet and
// reports whether it did.
func (s *CategoryService) SeedDefaults(ctx context.Context) (bool, error) {
	_, ok, err := s.categories.Get(ctx, categoriesKey)
	if err != nil {
		return false, fmt.Errorf("read categories: %w", err)
	}
	if ok {
		return false, nil
	}

	cats := core.DefaultCategories()
	if s.seedFile != "" {
		cats, err = core.LoadCategories(s.seedFile)
		if err != nil {
			return false, fmt.Errorf("load seed categories: %w", err)
		}
	}

	if err := s.categories.Set(ctx, categoriesKey, cats); err != nil {
		return false, fmt.Errorf("save categories: %w", err)
	}
	s.logger.InfoContext(ctx, "Categories seeded",
		log.FieldOperation, log.OpSeed,
		log.FieldCount, len(cats))
	return true, nil
}

// List returns the stored set, or the built-in defaults when nothing is
// stored.
func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	cats, ok, err := s.categories.Get(ctx, categoriesKey)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	if !ok {
		return core.DefaultCategories(), nil
	}
	return cats, nil
}

func (s *CategoryService) Find(ctx context.Context, id string) (core.Category, error) {
	cats, err := s.List(ctx)
	if err != nil {
		return core.Category{}, err
	}
	c, ok := core.FindCategory(cats, id)
	if !ok {
		return core.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	return c, nil
}

// Save adds c or replaces the category with the same ID. Existing expenses
// keep their embedded copy until relinked.
func (s *CategoryService) Save(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate category: %w", err)
	}
	cats, err := s.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range cats {
		if cats[i].ID == c.ID {
			cats[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		cats = append(cats, c)
	}
	if err := core.ValidateCategories(cats); err != nil {
		return fmt.Errorf("validate categories: %w", err)
	}

	if err := s.categories.Set(ctx, categoriesKey, cats); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	s.logger.InfoContext(ctx, "Category saved",
		log.FieldOperation, log.OpUpdate,
		log.FieldCategoryID, c.ID)
	return nil
}
