package router

import (
	"html/template"
	"net/http"

	"github.com/fisker/webdb-console/internal/api/handler"
	"github.com/fisker/webdb-console/internal/api/middleware"
	"github.com/fisker/webdb-console/pkg/static"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MsgNotFound is the plain-text body of every unmatched route.
const MsgNotFound = "Desculpe, página não encontrada."

func Setup(
	homeHandler *handler.HomeHandler,
	clientHandler *handler.ClientHandler,
	demandHandler *handler.DemandHandler,
) *gin.Engine {
	r := gin.New()

	// 使用自定义的 recovery 中间件（打印详细错误信息）
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Metrics())

	// 页面模板随二进制嵌入，解析失败属于构建错误
	r.SetHTMLTemplate(template.Must(static.Templates()))

	// 表查询
	r.GET("/", homeHandler.Index)
	r.POST("/search", homeHandler.Search)

	// 客户管理
	clients := r.Group("/clients")
	{
		clients.GET("", clientHandler.List)
		clients.GET("/new", clientHandler.New)
		clients.POST("/new", clientHandler.Create)
		clients.GET("/edit/:id", clientHandler.Edit)
		clients.POST("/edit/:id", clientHandler.Update)
		clients.POST("/delete/:id", clientHandler.Delete)
	}

	// 工单汇总
	r.GET("/demands", demandHandler.List)

	// 样式表
	r.GET("/static/*filepath", static.ServeStaticFiles())
	r.HEAD("/static/*filepath", static.ServeStaticFiles())

	// Prometheus Metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check (支持 GET 和 HEAD 方法)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, MsgNotFound)
	})

	return r
}
