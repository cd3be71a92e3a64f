package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/httpx"
	"littlelemon/internal/identity"
	"littlelemon/internal/order/usecase"
)

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, caller identity.Caller) (*domain.Order, error)
	ListOrdersFor(ctx context.Context, caller identity.Caller) ([]domain.Order, error)
	GetOrder(ctx context.Context, caller identity.Caller, orderID uint) (*domain.Order, error)
	Update(ctx context.Context, caller identity.Caller, orderID uint, req usecase.UpdateRequest) (*domain.Order, error)
	DeleteOrder(ctx context.Context, caller identity.Caller, orderID uint) error
}

type OrderController struct {
	uc     OrderUseCase
	logger *zap.Logger
}

func NewOrderController(uc OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		uc:     uc,
		logger: logger,
	}
}

type orderItemDTO struct {
	MenuItemID int    `json:"menuItemId"`
	MenuItem   string `json:"menuItem"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Price      string `json:"price"`
}

type orderDTO struct {
	ID             uint           `json:"id"`
	UserID         int            `json:"userId"`
	DeliveryCrewID *int           `json:"deliveryCrewId"`
	Status         string         `json:"status"`
	Total          string         `json:"total"`
	CreatedAt      time.Time      `json:"createdAt"`
	Items          []orderItemDTO `json:"items"`
}

// updateOrderRequest keeps status raw so that only JSON strings are accepted.
type updateOrderRequest struct {
	Status         json.RawMessage `json:"status"`
	DeliveryCrewID *int            `json:"deliveryCrewId"`
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.uc.ListOrdersFor(r.Context(), identity.CallerFromContext(r.Context()))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp := make([]orderDTO, len(orders))
	for i, o := range orders {
		resp[i] = toOrderDTO(o)
	}

	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := c.uc.PlaceOrder(r.Context(), identity.CallerFromContext(r.Context()))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, toOrderDTO(*order))
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := httpx.PathID(r, "orderId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	order, err := c.uc.GetOrder(r.Context(), identity.CallerFromContext(r.Context()), uint(orderID))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, toOrderDTO(*order))
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := httpx.PathID(r, "orderId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	var body updateOrderRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	req := usecase.UpdateRequest{DeliveryCrewID: body.DeliveryCrewID}
	if len(body.Status) > 0 && string(body.Status) != "null" {
		var status string
		if err := json.Unmarshal(body.Status, &status); err != nil {
			httpx.WriteError(w, logger, traceID, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
				Field:   "status",
				Message: "status must be one of pending, out_for_delivery, delivered",
			}))
			return
		}
		req.Status = &status
	}

	order, err := c.uc.Update(r.Context(), identity.CallerFromContext(r.Context()), uint(orderID), req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, toOrderDTO(*order))
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := httpx.PathID(r, "orderId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	if err := c.uc.DeleteOrder(r.Context(), identity.CallerFromContext(r.Context()), uint(orderID)); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteNoContent(w)
}

func toOrderDTO(o domain.Order) orderDTO {
	dto := orderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		DeliveryCrewID: o.DeliveryCrewID,
		Status:         o.Status.String(),
		Total:          o.Total.StringFixed(2),
		CreatedAt:      o.CreatedAt,
		Items:          make([]orderItemDTO, len(o.Items)),
	}
	for i, item := range o.Items {
		dto.Items[i] = orderItemDTO{
			MenuItemID: item.MenuItemID,
			MenuItem:   item.MenuItemTitle,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price.StringFixed(2),
			Price:      item.LineTotal().StringFixed(2),
		}
	}
	return dto
}
