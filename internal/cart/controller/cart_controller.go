package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"littlelemon/internal/authz"
	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/httpx"
	"littlelemon/internal/identity"
)

type CartService interface {
	AddItem(ctx context.Context, userID, menuItemID, quantity int) (*domain.CartEntry, error)
	ListItems(ctx context.Context, userID int) ([]domain.CartEntry, error)
	Clear(ctx context.Context, userID int) (int64, error)
}

type CartController struct {
	svc    CartService
	logger *zap.Logger
}

func NewCartController(svc CartService, logger *zap.Logger) *CartController {
	return &CartController{
		svc:    svc,
		logger: logger,
	}
}

type cartEntryDTO struct {
	ID         int    `json:"id"`
	MenuItemID int    `json:"menuItemId"`
	MenuItem   string `json:"menuItem"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Price      string `json:"price"`
}

type cartResponse struct {
	CartItems []cartEntryDTO `json:"cartItems"`
	Total     string         `json:"total"`
}

type addItemRequest struct {
	MenuItemID int  `json:"menuItemId"`
	Quantity   *int `json:"quantity"`
}

// The cart endpoints always act on the caller's own cart.
func (c *CartController) authorize(w http.ResponseWriter, r *http.Request, action authz.Action) (identity.Caller, *zap.Logger, string, bool) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	caller := identity.CallerFromContext(r.Context())
	if err := caller.Authorize(authz.ResourceCart, action, true); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return caller, logger, traceID, false
	}
	return caller, logger, traceID, true
}

func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	caller, logger, traceID, ok := c.authorize(w, r, authz.ActionRead)
	if !ok {
		return
	}

	entries, err := c.svc.ListItems(r.Context(), caller.UserID)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp := cartResponse{
		CartItems: make([]cartEntryDTO, len(entries)),
		Total:     domain.CartTotal(entries).StringFixed(2),
	}
	for i, e := range entries {
		resp.CartItems[i] = toCartEntryDTO(e)
	}

	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	caller, logger, traceID, ok := c.authorize(w, r, authz.ActionCreate)
	if !ok {
		return
	}

	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	if req.MenuItemID <= 0 {
		httpx.WriteError(w, logger, traceID, apperrors.NewValidationError("menuItemId is required", apperrors.ValidationDetail{
			Field:   "menuItemId",
			Message: "menuItemId must be a positive integer",
		}))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	entry, err := c.svc.AddItem(r.Context(), caller.UserID, req.MenuItemID, quantity)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, toCartEntryDTO(*entry))
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	caller, logger, traceID, ok := c.authorize(w, r, authz.ActionDelete)
	if !ok {
		return
	}

	if _, err := c.svc.Clear(r.Context(), caller.UserID); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteNoContent(w)
}

func toCartEntryDTO(e domain.CartEntry) cartEntryDTO {
	return cartEntryDTO{
		ID:         e.ID,
		MenuItemID: e.MenuItemID,
		MenuItem:   e.MenuItemTitle,
		Quantity:   e.Quantity,
		UnitPrice:  e.Price.StringFixed(2),
		Price:      e.LineTotal().StringFixed(2),
	}
}
