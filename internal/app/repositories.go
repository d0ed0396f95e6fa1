package app

import (
	"github.com/fisker/webdb-console/internal/repository"
	"github.com/fisker/webdb-console/pkg/config"
	"gorm.io/gorm"
)

// Repositories 包含所有 Repository 实例
type Repositories struct {
	Client *repository.ClientRepository
	Demand *repository.DemandRepository
}

// InitializeRepositories 初始化所有 Repository
func InitializeRepositories(db *gorm.DB, cfg *config.Config) *Repositories {
	return &Repositories{
		Client: repository.NewClientRepository(db),
		Demand: repository.NewDemandRepository(db, cfg.Reports.GLPISchema),
	}
}
