package app

import (
	"github.com/fisker/webdb-console/internal/api/handler"
)

// Handlers 包含所有 Handler 实例
type Handlers struct {
	Home   *handler.HomeHandler
	Client *handler.ClientHandler
	Demand *handler.DemandHandler
}

// InitializeHandlers 初始化所有 Handler
func InitializeHandlers(services *Services) *Handlers {
	return &Handlers{
		Home:   handler.NewHomeHandler(services.Inspector),
		Client: handler.NewClientHandler(services.Client),
		Demand: handler.NewDemandHandler(services.Demand),
	}
}
