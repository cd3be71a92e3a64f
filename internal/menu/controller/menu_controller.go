package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"littlelemon/internal/authz"
	"littlelemon/internal/domain"
	"littlelemon/internal/httpx"
	"littlelemon/internal/identity"
	"littlelemon/internal/menu/service"
)

type MenuService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	ReplaceItem(ctx context.Context, id int, item domain.MenuItem) (*domain.MenuItem, error)
	PatchItem(ctx context.Context, id int, patch service.MenuItemPatch) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type MenuController struct {
	svc    MenuService
	logger *zap.Logger
}

func NewMenuController(svc MenuService, logger *zap.Logger) *MenuController {
	return &MenuController{
		svc:    svc,
		logger: logger,
	}
}

// begin authorizes the request against the menu policy and returns the
// request-scoped logger and trace id. ok is false when a response was
// already written.
func (c *MenuController) begin(w http.ResponseWriter, r *http.Request, resource authz.Resource, action authz.Action) (*zap.Logger, string, bool) {
	traceID := httpx.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := identity.CallerFromContext(r.Context()).Authorize(resource, action, false); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return logger, traceID, false
	}
	return logger, traceID, true
}

func (c *MenuController) ListCategories(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceCategory, authz.ActionList)
	if !ok {
		return
	}

	categories, err := c.svc.ListCategories(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp := make([]categoryDTO, len(categories))
	for i, cat := range categories {
		resp[i] = toCategoryDTO(cat)
	}
	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *MenuController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceCategory, authz.ActionCreate)
	if !ok {
		return
	}

	var req categoryDTO
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	category, err := c.svc.CreateCategory(r.Context(), domain.Category{Slug: req.Slug, Title: req.Title})
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, toCategoryDTO(*category))
}

func (c *MenuController) ListItems(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceMenuItem, authz.ActionList)
	if !ok {
		return
	}

	items, err := c.svc.ListItems(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp := make([]menuItemDTO, len(items))
	for i, item := range items {
		resp[i] = toMenuItemDTO(item)
	}
	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *MenuController) GetItem(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceMenuItem, authz.ActionRead)
	if !ok {
		return
	}

	id, err := httpx.PathID(r, "menuItemId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	item, err := c.svc.GetItem(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, toMenuItemDTO(*item))
}

func (c *MenuController) CreateItem(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceMenuItem, authz.ActionCreate)
	if !ok {
		return
	}

	var req menuItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	item, err := c.svc.CreateItem(r.Context(), req.toMenuItem())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, toMenuItemDTO(*item))
}

func (c *MenuController) ReplaceItem(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceMenuItem, authz.ActionUpdate)
	if !ok {
		return
	}

	id, err := httpx.PathID(r, "menuItemId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	var req menuItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	item, err := c.svc.ReplaceItem(r.Context(), id, req.toMenuItem())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, toMenuItemDTO(*item))
}

func (c *MenuController) PatchItem(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceMenuItem, authz.ActionUpdate)
	if !ok {
		return
	}

	id, err := httpx.PathID(r, "menuItemId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	var req menuItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	item, err := c.svc.PatchItem(r.Context(), id, service.MenuItemPatch{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.Category,
	})
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, toMenuItemDTO(*item))
}

func (c *MenuController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	logger, traceID, ok := c.begin(w, r, authz.ResourceMenuItem, authz.ActionDelete)
	if !ok {
		return
	}

	id, err := httpx.PathID(r, "menuItemId")
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	if err := c.svc.DeleteItem(r.Context(), id); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteNoContent(w)
}
