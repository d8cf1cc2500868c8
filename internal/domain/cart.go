package domain

import "github.com/shopspring/decimal"

// CartLine is one product in the cart. Name and unit price are snapshots
// taken when the product was first added; they are never re-fetched.
type CartLine struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total is quantity times the snapshot unit price.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product ID. It lives only in memory and is
// never persisted.
type Cart struct {
	Lines []CartLine
}

// Add inserts a line with quantity 1 for an unseen product, or increments the
// existing line by one. Each call adds exactly one unit.
func (c *Cart) Add(p Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: decimal.NewFromFloat(p.Price),
		Quantity:  1,
	})
}

// SetQuantity sets the quantity for a line. A quantity of zero or less
// removes the line; that is the designed remove path, not an error. Setting a
// quantity for an unknown product ID is a no-op and never creates a line.
func (c *Cart) SetQuantity(productID, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		return
	}
}

// Line returns the line for a product ID, if present.
func (c *Cart) Line(productID int) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Total is the sum of all line totals. This is the amount presented at
// checkout.
func (c *Cart) Total() decimal.Decimal {
	t := decimal.Zero
	for _, l := range c.Lines {
		t = t.Add(l.Total())
	}
	return t
}

func (c *Cart) Len() int { return len(c.Lines) }

func (c *Cart) Clear() { c.Lines = nil }

// SaleItem is one line of the batch checkout payload.
type SaleItem struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// SaleItems renders the cart as the batch sale payload. Prices are the
// client-side snapshots; the backend re-validates them.
func (c *Cart) SaleItems() []SaleItem {
	items := make([]SaleItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		price, _ := l.UnitPrice.Float64()
		items = append(items, SaleItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     price,
		})
	}
	return items
}
