package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fisker/webdb-console/pkg/config"
	"github.com/fisker/webdb-console/pkg/database"
	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const defaultConfigPath = "config/config.yaml"

// Bootstrap 初始化基础设施（.env, config, logger, database）
func Bootstrap(cfgPath string) (*config.Config, *gorm.DB, error) {
	// .env 只补充未设置的环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// 支持通过环境变量指定配置文件路径
	if cfgPath == "" {
		cfgPath = os.Getenv("WEBDB_CONFIG")
		if cfgPath == "" {
			cfgPath = defaultConfigPath
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	// Initialize logger
	if err := logger.Init(&cfg.Logging); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Infof("Configuration loaded from %s", cfgPath)

	// Initialize database
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("Database initialized successfully")

	return cfg, db, nil
}
