package database

import (
	"fmt"
	"time"

	"github.com/fisker/webdb-console/pkg/config"
	"github.com/fisker/webdb-console/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open 初始化连接池（支持 MySQL、PostgreSQL 和 SQLite）
// The returned *gorm.DB owns the single *sql.DB pool shared by every repository and the query executor.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	cfg.SetDefaults()

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(cfg.DSN())
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: mysql, postgres, sqlite)", cfg.Driver)
	}

	logger.Infof("Connecting to %s database...", cfg.Driver)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(
			gormWriter{},
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	maxIdleConns := cfg.MaxIdleConns
	if IsSQLite(cfg.Driver) && cfg.DBName == ":memory:" {
		// 每个 :memory: 连接都是独立的数据库，只能保留一个连接
		maxOpenConns, maxIdleConns = 1, 1
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	logger.Infof("Database connection pool configured: MaxOpenConns=%d, MaxIdleConns=%d, ConnMaxLifetime=%ds",
		maxOpenConns, maxIdleConns, cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Database connection verified successfully")
	return db, nil
}

// Close 关闭连接池
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsSQLite reports whether driver names the embedded sqlite engine.
func IsSQLite(driver string) bool {
	return driver == "sqlite" || driver == "sqlite3"
}

// gormWriter routes GORM's slow query and error lines into the zap logger.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
