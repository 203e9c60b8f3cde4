package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type (
	// PaymentMethod is an open tag; card and cash are predefined.
	PaymentMethod string

	// Category is reference data, embedded by value into expenses.
	Category struct {
		ID    string `json:"id" yaml:"id"`
		Name  string `json:"name" yaml:"name"`
		Icon  string `json:"icon" yaml:"icon"`
		Color string `json:"color" yaml:"color"`
	}

	Expense struct {
		ID            string          `json:"id"`
		Amount        decimal.Decimal `json:"amount"`
		Category      Category        `json:"category"`
		Description   string          `json:"description"`
		Date          time.Time       `json:"date"`
		PaymentMethod PaymentMethod   `json:"paymentMethod"`
	}
)

var (
	ErrEmptyID             = errors.New("empty id")
	ErrNegativeAmount      = errors.New("negative amount")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEmptyCategory       = errors.New("empty category id")
	ErrEmptyCategoryName   = errors.New("empty category name")
	ErrEmptyPaymentMethod  = errors.New("empty payment method")
	ErrIDAlreadyAssigned   = errors.New("id already assigned")
	ErrDuplicateCategoryID = errors.New("duplicate category id")
)

// NewDate creates a UTC midnight timestamp from year, month, day
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// String implements fmt.Stringer
func (p PaymentMethod) String() string {
	return string(p)
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	return nil
}

// AssignID sets the identifier of a draft expense. It fails if one is set.
func (e *Expense) AssignID(id string) error {
	if e.ID != "" {
		return ErrIDAlreadyAssigned
	}
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}
	e.ID = id
	return nil
}

// Validate checks a persisted expense. Descriptions are not length-limited.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Category.ID) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(string(e.PaymentMethod)) == "" {
		return ErrEmptyPaymentMethod
	}
	return nil
}

// ValidateCategories checks every category and rejects duplicate IDs.
func ValidateCategories(cats []Category) error {
	seen := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCategoryID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
