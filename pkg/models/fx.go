package models

import (
	"github.com/google/uuid"
)

type FxConversionRequest struct {
	FromCurrency Currency `json:"fromCurrency"`
	ToCurrency   Currency `json:"toCurrency"`
	FromAmount   float64  `json:"fromAmount"`
}

// FxConversion is a quoted currency conversion.
type FxConversion struct {
	FromCurrency Currency  `json:"fromCurrency"`
	ToCurrency   Currency  `json:"toCurrency"`
	FromAmount   Float     `json:"fromAmount"`
	ToAmount     Float     `json:"toAmount"`
	Rate         Float     `json:"rate"`
	Quote        uuid.UUID `json:"quote"`
}
