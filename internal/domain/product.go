package domain

import (
	"errors"
	"strconv"
	"strings"
)

// Product mirrors the backend's product record. The client only ever holds a
// cached copy; the server owns the record and assigns the ID.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductDraft is the full-record payload for create and update. Updates are
// full-record replaces: name, price and stock are always resent together.
type ProductDraft struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ParseDraft coerces raw form input into a draft. Name must be non-empty
// after trimming, price a non-negative decimal, stock a non-negative integer.
func ParseDraft(name, price, stock string) (ProductDraft, error) {
	var draft ProductDraft

	draft.Name = strings.TrimSpace(name)
	if draft.Name == "" {
		return ProductDraft{}, errors.New("product name cannot be empty")
	}

	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return ProductDraft{}, errors.New("product price must be a number")
	}
	if p < 0 {
		return ProductDraft{}, errors.New("product price cannot be negative")
	}
	draft.Price = p

	s, err := strconv.Atoi(strings.TrimSpace(stock))
	if err != nil {
		return ProductDraft{}, errors.New("product stock must be a whole number")
	}
	if s < 0 {
		return ProductDraft{}, errors.New("product stock cannot be negative")
	}
	draft.Stock = s

	return draft, nil
}

// DraftOf returns a full-record draft carrying the product's current fields.
func DraftOf(p Product) ProductDraft {
	return ProductDraft{Name: p.Name, Price: p.Price, Stock: p.Stock}
}
