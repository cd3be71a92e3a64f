package order

import (
	"database/sql"

	"go.uber.org/zap"

	cartrepo "littlelemon/internal/cart/repository"
	"littlelemon/internal/config"
	"littlelemon/internal/infrastructure/mysql"
	"littlelemon/internal/order/controller"
	orderrepo "littlelemon/internal/order/repository"
	"littlelemon/internal/order/service"
	"littlelemon/internal/order/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, crew usecase.CrewDirectory, logger *zap.Logger) *controller.OrderController {
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db, itemRepo)
	cartRepo := cartrepo.NewMySQLCartRepository(db)

	lifecycle := service.NewLifecycleService(
		mysql.NewTxManager(db),
		cartRepo,
		orderRepo,
		itemRepo,
		cfg.Order.TxTimeout,
		logger,
	)

	uc := usecase.NewOrderUseCase(lifecycle, orderRepo, crew, logger)

	return controller.NewOrderController(uc, logger)
}
