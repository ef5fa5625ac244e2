package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Times returns the price of qty units at this unit price.
func (m Money) Times(qty int32) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt32(qty)),
		Currency: m.Currency,
	}
}
