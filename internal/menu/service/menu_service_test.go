package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
)

type mockCategoryRepository struct {
	ListFunc   func(ctx context.Context) ([]domain.Category, error)
	CreateFunc func(ctx context.Context, category domain.Category) (int, error)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return m.ListFunc(ctx)
}

func (m *mockCategoryRepository) Create(ctx context.Context, category domain.Category) (int, error) {
	return m.CreateFunc(ctx, category)
}

// memoryMenuItemRepository keeps items in a map so update paths can be
// asserted on the stored state.
type memoryMenuItemRepository struct {
	items  map[int]domain.MenuItem
	nextID int
}

func newMemoryMenuItemRepository(items ...domain.MenuItem) *memoryMenuItemRepository {
	repo := &memoryMenuItemRepository{items: map[int]domain.MenuItem{}, nextID: 1}
	for _, it := range items {
		repo.items[it.ID] = it
		if it.ID >= repo.nextID {
			repo.nextID = it.ID + 1
		}
	}
	return repo
}

func (m *memoryMenuItemRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	out := []domain.MenuItem{}
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *memoryMenuItemRepository) FindByID(ctx context.Context, id int) (*domain.MenuItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("menu item not found")
	}
	return &it, nil
}

func (m *memoryMenuItemRepository) Create(ctx context.Context, item domain.MenuItem) (int, error) {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item.ID, nil
}

func (m *memoryMenuItemRepository) Update(ctx context.Context, item domain.MenuItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memoryMenuItemRepository) Delete(ctx context.Context, id int) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.NewNotFoundError("menu item not found")
	}
	delete(m.items, id)
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateMenuItem(t *testing.T) {
	tests := []struct {
		name  string
		item  domain.MenuItem
		field string
	}{
		{name: "valid", item: domain.MenuItem{Title: "Bruschetta", Price: price("5.50"), CategoryID: 1}},
		{name: "missing title", item: domain.MenuItem{Price: price("5"), CategoryID: 1}, field: "title"},
		{name: "zero price", item: domain.MenuItem{Title: "x", Price: price("0"), CategoryID: 1}, field: "price"},
		{name: "negative price", item: domain.MenuItem{Title: "x", Price: price("-1"), CategoryID: 1}, field: "price"},
		{name: "three decimals", item: domain.MenuItem{Title: "x", Price: price("1.005"), CategoryID: 1}, field: "price"},
		{name: "too expensive", item: domain.MenuItem{Title: "x", Price: price("1000000"), CategoryID: 1}, field: "price"},
		{name: "missing category", item: domain.MenuItem{Title: "x", Price: price("1")}, field: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMenuItem(tt.item)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			require.Len(t, ve.Details, 1)
			assert.Equal(t, tt.field, ve.Details[0].Field)
		})
	}
}

func TestMenuService_CreateItem(t *testing.T) {
	repo := newMemoryMenuItemRepository()
	svc := NewMenuService(&mockCategoryRepository{}, repo, zap.NewNop())

	item, err := svc.CreateItem(context.Background(), domain.MenuItem{Title: "  Greek Salad ", Price: price("12.50"), CategoryID: 2})

	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)
	assert.Equal(t, "Greek Salad", repo.items[1].Title)
}

func TestMenuService_PatchItem_OnlyTouchesGivenFields(t *testing.T) {
	repo := newMemoryMenuItemRepository(domain.MenuItem{ID: 4, Title: "Lemon Dessert", Price: price("4.00"), CategoryID: 3})
	svc := NewMenuService(&mockCategoryRepository{}, repo, zap.NewNop())

	newPrice := price("4.50")
	featured := true
	item, err := svc.PatchItem(context.Background(), 4, MenuItemPatch{Price: &newPrice, Featured: &featured})

	require.NoError(t, err)
	assert.Equal(t, "Lemon Dessert", item.Title)
	assert.True(t, repo.items[4].Featured)
	assert.Equal(t, "4.50", repo.items[4].Price.StringFixed(2))
	assert.Equal(t, 3, repo.items[4].CategoryID)
}

func TestMenuService_PatchItem_InvalidLeavesStoreUntouched(t *testing.T) {
	repo := newMemoryMenuItemRepository(domain.MenuItem{ID: 4, Title: "Lemon Dessert", Price: price("4.00"), CategoryID: 3})
	svc := NewMenuService(&mockCategoryRepository{}, repo, zap.NewNop())

	bad := price("-2")
	_, err := svc.PatchItem(context.Background(), 4, MenuItemPatch{Price: &bad})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "4.00", repo.items[4].Price.StringFixed(2))
}

func TestMenuService_ReplaceItem_NotFound(t *testing.T) {
	svc := NewMenuService(&mockCategoryRepository{}, newMemoryMenuItemRepository(), zap.NewNop())

	_, err := svc.ReplaceItem(context.Background(), 9, domain.MenuItem{Title: "x", Price: price("1"), CategoryID: 1})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestMenuService_DeleteItem(t *testing.T) {
	repo := newMemoryMenuItemRepository(domain.MenuItem{ID: 1, Title: "x", Price: price("1"), CategoryID: 1})
	svc := NewMenuService(&mockCategoryRepository{}, repo, zap.NewNop())

	require.NoError(t, svc.DeleteItem(context.Background(), 1))
	assert.Empty(t, repo.items)

	_, ok := apperrors.IsNotFoundError(svc.DeleteItem(context.Background(), 1))
	assert.True(t, ok)
}

func TestMenuService_CreateCategory(t *testing.T) {
	categories := &mockCategoryRepository{
		CreateFunc: func(ctx context.Context, category domain.Category) (int, error) {
			return 5, nil
		},
	}
	svc := NewMenuService(categories, newMemoryMenuItemRepository(), zap.NewNop())

	c, err := svc.CreateCategory(context.Background(), domain.Category{Slug: "main-course", Title: "Main Course"})
	require.NoError(t, err)
	assert.Equal(t, 5, c.ID)

	_, err = svc.CreateCategory(context.Background(), domain.Category{Slug: "Main Course", Title: ""})
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 2)
}
