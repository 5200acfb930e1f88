package models

import (
	"errors"
	"fmt"
)

// Category is the closed set of labels a support email can be classified
// into. The wire values are fixed; anything else must be rejected at the
// boundary and mapped to CategoryInconclusive.
type Category string

const (
	CategoryNegativeFeedback Category = "FEEDBACK_NEGATIVO"
	CategoryPositiveFeedback Category = "FEEDBACK_POSITIVO"
	CategoryWarranty         Category = "GARANTIA"
	CategoryRefund           Category = "ARREPENDIMENTO_REEMBOLSO"
	CategoryGeneralInquiry   Category = "DUVIDAS_GERAIS"
	CategoryInconclusive     Category = "INCONCLUSIVO"
)

var ErrInvalidCategory = errors.New("invalid category")

// AllCategories lists every valid category, in prompt order.
var AllCategories = []Category{
	CategoryNegativeFeedback,
	CategoryPositiveFeedback,
	CategoryWarranty,
	CategoryRefund,
	CategoryGeneralInquiry,
	CategoryInconclusive,
}

// ParseCategory maps a free-text label onto the taxonomy. Unknown labels
// fail with ErrInvalidCategory; callers substitute CategoryInconclusive.
func ParseCategory(label string) (Category, error) {
	switch Category(label) {
	case CategoryNegativeFeedback,
		CategoryPositiveFeedback,
		CategoryWarranty,
		CategoryRefund,
		CategoryGeneralInquiry,
		CategoryInconclusive:
		return Category(label), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, label)
}

func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}
