package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID    int
	Slug  string
	Title string
}

type MenuItem struct {
	ID         int
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID int
}
