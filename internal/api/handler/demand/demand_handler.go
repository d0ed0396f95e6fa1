package demand

import (
	"net/http"

	"github.com/fisker/webdb-console/internal/model"
	demandService "github.com/fisker/webdb-console/internal/service/demand"
	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

const msgListError = "Erro ao buscar demandas."

type DemandHandler struct {
	demandService *demandService.DemandService
}

func NewDemandHandler(demandService *demandService.DemandService) *DemandHandler {
	return &DemandHandler{
		demandService: demandService,
	}
}

// List 未关闭工单汇总；查询失败时仍渲染页面并提示错误
func (h *DemandHandler) List(c *gin.Context) {
	rows, err := h.demandService.Summarize(c.Request.Context())
	message := ""
	if err != nil {
		logger.Errorf("Failed to summarize demands: %v", err)
		message = msgListError
	}

	c.HTML(http.StatusOK, model.ViewDemands, gin.H{
		"Title":   "Demandas",
		"Error":   message,
		"Demands": rows,
	})
}
