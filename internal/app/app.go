package app

import (
	"github.com/fisker/webdb-console/pkg/config"
	"github.com/fisker/webdb-console/pkg/database"
	"github.com/fisker/webdb-console/pkg/logger"
	"gorm.io/gorm"
)

// App 应用程序上下文
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Repos    *Repositories
	Services *Services
	Handlers *Handlers
}

// Initialize 初始化应用程序
func Initialize(cfgPath string) (*App, error) {
	// 1. Bootstrap (config, logger, database)
	cfg, db, err := Bootstrap(cfgPath)
	if err != nil {
		return nil, err
	}

	// 2. Initialize repositories
	repos := InitializeRepositories(db, cfg)
	logger.Infof("Repositories initialized")

	// 3. Initialize services
	services, err := InitializeServices(db, repos, cfg)
	if err != nil {
		database.Close(db)
		return nil, err
	}
	logger.Infof("Services initialized")

	// 4. Initialize handlers
	handlers := InitializeHandlers(services)
	logger.Infof("Handlers initialized")

	return &App{
		Config:   cfg,
		DB:       db,
		Repos:    repos,
		Services: services,
		Handlers: handlers,
	}, nil
}
