package cart

import (
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/cart/controller"
	"littlelemon/internal/cart/repository"
	"littlelemon/internal/cart/service"
	"littlelemon/internal/config"
	menurepo "littlelemon/internal/menu/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.CartController {
	cartRepo := repository.NewMySQLCartRepository(db)
	menuRepo := menurepo.NewMySQLMenuItemRepository(db)
	svc := service.NewCartService(cartRepo, menuRepo, cfg.Cart.MaxQuantity, logger)
	return controller.NewCartController(svc, logger)
}
