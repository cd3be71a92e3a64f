package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
)

const maxTitleLength = 255

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	maxPrice    = decimal.RequireFromString("999999.99")
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category domain.Category) (int, error)
}

type MenuItemRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id int) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (int, error)
	Update(ctx context.Context, item domain.MenuItem) error
	Delete(ctx context.Context, id int) error
}

// MenuItemPatch carries the fields of a partial update; nil fields are left
// unchanged.
type MenuItemPatch struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *int
}

type MenuService struct {
	categories CategoryRepository
	items      MenuItemRepository
	logger     *zap.Logger
}

func NewMenuService(categories CategoryRepository, items MenuItemRepository, logger *zap.Logger) *MenuService {
	return &MenuService{
		categories: categories,
		items:      items,
		logger:     logger,
	}
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *MenuService) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	category.Slug = strings.TrimSpace(category.Slug)
	category.Title = strings.TrimSpace(category.Title)

	var details []apperrors.ValidationDetail
	if !slugPattern.MatchString(category.Slug) {
		details = append(details, apperrors.ValidationDetail{Field: "slug", Message: "slug must be lowercase letters, digits and dashes"})
	}
	details = append(details, validateTitle(category.Title)...)
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	id, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id

	s.logger.Info("category created", zap.Int("categoryId", id), zap.String("slug", category.Slug))

	return &category, nil
}

func (s *MenuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.items.List(ctx)
}

func (s *MenuService) GetItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.items.FindByID(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	item.Title = strings.TrimSpace(item.Title)
	if err := ValidateMenuItem(item); err != nil {
		return nil, err
	}

	id, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id

	s.logger.Info("menu item created", zap.Int("menuItemId", id), zap.String("price", item.Price.StringFixed(2)))

	return &item, nil
}

// ReplaceItem overwrites every field of an existing item.
func (s *MenuService) ReplaceItem(ctx context.Context, id int, item domain.MenuItem) (*domain.MenuItem, error) {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return nil, err
	}

	item.ID = id
	item.Title = strings.TrimSpace(item.Title)
	if err := ValidateMenuItem(item); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item replaced", zap.Int("menuItemId", id))

	return &item, nil
}

func (s *MenuService) PatchItem(ctx context.Context, id int, patch MenuItemPatch) (*domain.MenuItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		item.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Featured != nil {
		item.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		item.CategoryID = *patch.CategoryID
	}

	if err := ValidateMenuItem(*item); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, *item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item updated", zap.Int("menuItemId", id))

	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id int) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu item deleted", zap.Int("menuItemId", id))

	return nil
}

func ValidateMenuItem(item domain.MenuItem) error {
	details := validateTitle(item.Title)

	switch {
	case !item.Price.IsPositive():
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be greater than zero"})
	case !item.Price.Equal(item.Price.Round(2)):
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must have at most 2 decimal places"})
	case item.Price.GreaterThan(maxPrice):
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: fmt.Sprintf("price must not exceed %s", maxPrice.StringFixed(2))})
	}

	if item.CategoryID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateTitle(title string) []apperrors.ValidationDetail {
	if title == "" {
		return []apperrors.ValidationDetail{{Field: "title", Message: "title is required"}}
	}
	if len(title) > maxTitleLength {
		return []apperrors.ValidationDetail{{Field: "title", Message: "title must be at most 255 characters"}}
	}
	return nil
}
