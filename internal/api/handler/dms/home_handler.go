package dms

import (
	"errors"
	"net/http"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/fisker/webdb-console/internal/service/dms"
	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	titleHome      = "Pesquisar tabela"
	msgSearchError = "Erro ao buscar dados da tabela."
)

type HomeHandler struct {
	inspector *dms.Inspector
}

func NewHomeHandler(inspector *dms.Inspector) *HomeHandler {
	return &HomeHandler{
		inspector: inspector,
	}
}

type SearchRequest struct {
	Table string `form:"table" json:"table"`
}

// Index 表名搜索页
func (h *HomeHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, model.ViewHome, gin.H{
		"Title": titleHome,
		"Error": "",
		"Table": "",
	})
}

// Search 检查表是否存在并展示最多 100 行
func (h *HomeHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		// 无法解析的请求体按空表名处理
		logger.Debugf("Search request body could not be bound: %v", err)
	}

	snapshot, err := h.inspector.FetchSample(c.Request.Context(), req.Table)
	if err != nil {
		var ve *model.ValidationError
		var nf *model.NotFoundError
		message := msgSearchError
		switch {
		case errors.As(err, &ve):
			message = ve.Message
		case errors.As(err, &nf):
			message = nf.Message
		default:
			logger.Errorf("Table search for %q failed: %v", req.Table, err)
		}

		c.HTML(http.StatusOK, model.ViewHome, gin.H{
			"Title": titleHome,
			"Error": message,
			"Table": req.Table,
		})
		return
	}

	c.HTML(http.StatusOK, model.ViewTable, gin.H{
		"Title":    "Tabela: " + snapshot.Name,
		"Error":    "",
		"Snapshot": snapshot,
		"Limit":    model.SampleLimit,
	})
}
