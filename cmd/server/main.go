package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"littlelemon/internal/cart"
	"littlelemon/internal/config"
	identitycontroller "littlelemon/internal/identity/controller"
	identityrepo "littlelemon/internal/identity/repository"
	identityservice "littlelemon/internal/identity/service"
	"littlelemon/internal/infrastructure/logger"
	"littlelemon/internal/infrastructure/mysql"
	"littlelemon/internal/menu"
	"littlelemon/internal/order"
	"littlelemon/internal/server"
	"littlelemon/internal/user"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(ctx, db); err != nil {
			zapLogger.Fatal("migrating schema", zap.Error(err))
		}
		zapLogger.Info("schema migrated")
	}

	userModule := user.NewModule(db, cfg, zapLogger)

	tokenRepo := identityrepo.NewMySQLTokenRepository(db)
	authSvc := identityservice.NewAuthService(userModule.Users, tokenRepo, userModule.Directory, cfg.Auth.TokenBytes, zapLogger)

	handlers := server.Handlers{
		Register:          userModule.Register,
		Tokens:            identitycontroller.NewTokenController(authSvc, zapLogger),
		Menu:              menu.NewModule(db, zapLogger),
		Cart:              cart.NewModule(db, cfg, zapLogger),
		Orders:            order.NewModule(db, cfg, userModule.Directory, zapLogger),
		ManagerGroup:      userModule.ManagerGroup,
		DeliveryCrewGroup: userModule.DeliveryCrewGroup,
	}

	router := server.NewRouter(handlers, authSvc, db, zapLogger)
	srv := server.New(cfg.Server, router, zapLogger)

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
