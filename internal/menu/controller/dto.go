package controller

import (
	"github.com/shopspring/decimal"

	"littlelemon/internal/domain"
)

type categoryDTO struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type menuItemDTO struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Featured bool   `json:"featured"`
	Category int    `json:"category"`
}

// menuItemRequest is shared by POST, PUT and PATCH. Price accepts a JSON
// number or a quoted decimal string.
type menuItemRequest struct {
	Title    *string          `json:"title"`
	Price    *decimal.Decimal `json:"price"`
	Featured *bool            `json:"featured"`
	Category *int             `json:"category"`
}

func (r menuItemRequest) toMenuItem() domain.MenuItem {
	var item domain.MenuItem
	if r.Title != nil {
		item.Title = *r.Title
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Featured != nil {
		item.Featured = *r.Featured
	}
	if r.Category != nil {
		item.CategoryID = *r.Category
	}
	return item
}

func toCategoryDTO(c domain.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Slug: c.Slug, Title: c.Title}
}

func toMenuItemDTO(m domain.MenuItem) menuItemDTO {
	return menuItemDTO{
		ID:       m.ID,
		Title:    m.Title,
		Price:    m.Price.StringFixed(2),
		Featured: m.Featured,
		Category: m.CategoryID,
	}
}
