package static

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed assets/*
var assetFiles embed.FS

var statusLabels = map[string]string{
	model.StatusGreen:  "verde",
	model.StatusYellow: "amarelo",
	model.StatusRed:    "vermelho",
}

// FuncMap 模板辅助函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"cell":        FormatCell,
		"fixed":       FormatFixed,
		"hours":       FormatHours,
		"statusLabel": StatusLabel,
	}
}

// Templates 解析嵌入的全部页面模板，模板名为文件名（如 home.html）
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFiles, "templates/*.html")
}

// GetFileSystem 返回嵌入的样式等静态资源
func GetFileSystem() http.FileSystem {
	fsys, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		return http.FS(assetFiles)
	}
	return http.FS(fsys)
}

// ServeStaticFiles serves the embedded assets under /static/*filepath.
func ServeStaticFiles() gin.HandlerFunc {
	fileServer := http.StripPrefix("/static", http.FileServer(GetFileSystem()))

	return func(c *gin.Context) {
		path := c.Param("filepath")
		if path == "" || path == "/" {
			c.Status(http.StatusNotFound)
			c.Abort()
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}

// FormatCell renders a table cell; NULL renders as an empty cell.
func FormatCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatHours renders a nullable hour column; NULL renders empty.
func FormatHours(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

// StatusLabel returns the Portuguese label of a usage status.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}
