package user

import (
	"database/sql"

	"go.uber.org/zap"

	"littlelemon/internal/config"
	"littlelemon/internal/domain"
	"littlelemon/internal/infrastructure/mysql"
	"littlelemon/internal/user/controller"
	"littlelemon/internal/user/repository"
	"littlelemon/internal/user/service"
)

type Module struct {
	Directory         *service.RoleDirectory
	Users             *repository.MySQLUserRepository
	Register          *controller.RegisterController
	ManagerGroup      *controller.GroupController
	DeliveryCrewGroup *controller.GroupController
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	userRepo := repository.NewMySQLUserRepository(db)
	groupRepo := repository.NewMySQLGroupRepository(db)

	directory := service.NewRoleDirectory(db, userRepo, groupRepo, logger)
	registration := service.NewRegistrationService(mysql.NewTxManager(db), userRepo, groupRepo, cfg.Auth.BcryptCost, logger)

	return &Module{
		Directory:         directory,
		Users:             userRepo,
		Register:          controller.NewRegisterController(registration, logger),
		ManagerGroup:      controller.NewGroupController(directory, domain.RoleManager, logger),
		DeliveryCrewGroup: controller.NewGroupController(directory, domain.RoleDeliveryCrew, logger),
	}
}
