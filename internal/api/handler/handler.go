// Package handler 提供统一的 handler 导出
// 所有 handler 按功能模块分类到子目录中
package handler

import (
	// Client handlers
	clientHandler "github.com/fisker/webdb-console/internal/api/handler/client"
	// Demand handlers
	demandHandler "github.com/fisker/webdb-console/internal/api/handler/demand"
	// DMS handlers
	dmsHandler "github.com/fisker/webdb-console/internal/api/handler/dms"
)

// DMS handlers
type HomeHandler = dmsHandler.HomeHandler

var NewHomeHandler = dmsHandler.NewHomeHandler

// Client handlers
type ClientHandler = clientHandler.ClientHandler

var NewClientHandler = clientHandler.NewClientHandler

// Demand handlers
type DemandHandler = demandHandler.DemandHandler

var NewDemandHandler = demandHandler.NewDemandHandler
