package model

import (
	"fmt"

	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

// View names rendered by the handlers.
const (
	ViewHome       = "home.html"
	ViewTable      = "table.html"
	ViewClients    = "clients.html"
	ViewClientForm = "client_form.html"
	ViewDemands    = "demands.html"
)

// HandleError logs err with the request details and answers with a plain-text message.
// The message is what the user sees; err never leaves the server.
func HandleError(c *gin.Context, code int, err error, message string) {
	requestMethod := c.Request.Method
	requestPath := c.Request.URL.Path
	requestQuery := c.Request.URL.RawQuery

	fullURL := requestPath
	if requestQuery != "" {
		fullURL = fmt.Sprintf("%s?%s", requestPath, requestQuery)
	}

	requestID := c.GetString("request_id")

	logger.Errorf(
		"Request error [%d]: %v\n"+
			"  Request: %s %s\n"+
			"  Client IP: %s\n"+
			"  User-Agent: %s\n"+
			"  Request ID: %s",
		code,
		err,
		requestMethod,
		fullURL,
		c.ClientIP(),
		c.Request.UserAgent(),
		requestID,
	)

	c.String(code, message)
}
