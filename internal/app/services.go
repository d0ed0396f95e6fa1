package app

import (
	"fmt"

	clientService "github.com/fisker/webdb-console/internal/service/client"
	demandService "github.com/fisker/webdb-console/internal/service/demand"
	"github.com/fisker/webdb-console/internal/service/dms"
	"github.com/fisker/webdb-console/pkg/config"
	"gorm.io/gorm"
)

// Services 包含所有 Service 实例
type Services struct {
	Inspector *dms.Inspector
	Client    *clientService.ClientService
	Demand    *demandService.DemandService
}

// InitializeServices 初始化所有 Service
// 查询执行器与 gorm 共用同一个连接池
func InitializeServices(db *gorm.DB, repos *Repositories, cfg *config.Config) (*Services, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	executor, err := dms.NewExecutor(sqlDB, cfg.Database.Driver, cfg.Server.QueryTimeoutDuration())
	if err != nil {
		return nil, err
	}

	return &Services{
		Inspector: dms.NewInspector(executor),
		Client:    clientService.NewClientService(repos.Client),
		Demand:    demandService.NewDemandService(repos.Demand),
	}, nil
}
