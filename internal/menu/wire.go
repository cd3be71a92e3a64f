package menu

import (
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/menu/controller"
	"littlelemon/internal/menu/repository"
	"littlelemon/internal/menu/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.MenuController {
	categoryRepo := repository.NewMySQLCategoryRepository(db)
	itemRepo := repository.NewMySQLMenuItemRepository(db)
	svc := service.NewMenuService(categoryRepo, itemRepo, logger)
	return controller.NewMenuController(svc, logger)
}
