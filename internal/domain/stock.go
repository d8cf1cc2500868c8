package domain

import (
	"strconv"
	"strings"
)

// StockAdjustment is the ephemeral state of the stock dialog: a snapshot of
// the stock observed when the dialog opened plus a signed delta. Only the
// derived new stock is ever committed; the delta itself is never sent.
type StockAdjustment struct {
	ProductID    int
	CurrentStock int
	Delta        int
}

func NewStockAdjustment(p Product) StockAdjustment {
	return StockAdjustment{ProductID: p.ID, CurrentStock: p.Stock}
}

func (a *StockAdjustment) Inc() { a.Delta++ }

func (a *StockAdjustment) Dec() { a.Delta-- }

// SetDeltaInput parses direct numeric entry. Unparseable input resets the
// delta to zero rather than failing.
func (a *StockAdjustment) SetDeltaInput(input string) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		a.Delta = 0
		return
	}
	a.Delta = n
}

// NewStock is snapshot + delta. No lower bound is enforced here; a negative
// result is allowed to reach the backend, which is the last line of defense.
func (a *StockAdjustment) NewStock() int {
	return a.CurrentStock + a.Delta
}
