package domain

import "github.com/shopspring/decimal"

// CartEntry is one (user, menu item) line of a cart. Price is the unit price
// copied from the menu item when the line was first created.
type CartEntry struct {
	ID            int
	UserID        int
	MenuItemID    int
	MenuItemTitle string
	Quantity      int
	Price         decimal.Decimal
}

func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func CartTotal(entries []CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal())
	}
	return total
}
