package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fisker/webdb-console/internal/model"
	clientService "github.com/fisker/webdb-console/internal/service/client"
	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	titleList = "Clientes"
	titleNew  = "Novo Cliente"
	titleEdit = "Editar Cliente"

	msgListError   = "Erro ao buscar clientes."
	msgCreateError = "Erro ao adicionar cliente"
	msgUpdateError = "Erro ao atualizar cliente"
	msgDeleteError = "Erro ao excluir cliente"

	clientsPath = "/clients"
)

type ClientHandler struct {
	clientService *clientService.ClientService
}

func NewClientHandler(clientService *clientService.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// parseID 解析路径中的客户 ID；非数字 ID 视为客户不存在
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func editPath(id uint) string {
	return fmt.Sprintf("%s/edit/%d", clientsPath, id)
}

func (h *ClientHandler) renderForm(c *gin.Context, title, action string, form model.ClientForm, message string) {
	c.HTML(http.StatusOK, model.ViewClientForm, gin.H{
		"Title":  title,
		"Error":  message,
		"Action": action,
		"Form":   form,
	})
}

// List 客户列表
func (h *ClientHandler) List(c *gin.Context) {
	views, err := h.clientService.List(c.Request.Context())
	message := ""
	if err != nil {
		logger.Errorf("Failed to list clients: %v", err)
		message = msgListError
	}

	c.HTML(http.StatusOK, model.ViewClients, gin.H{
		"Title":   titleList,
		"Error":   message,
		"Clients": views,
	})
}

// New 新建客户表单
func (h *ClientHandler) New(c *gin.Context) {
	h.renderForm(c, titleNew, clientsPath+"/new", model.ClientForm{}, "")
}

// Create 创建客户
func (h *ClientHandler) Create(c *gin.Context) {
	var form model.ClientForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Debugf("Client form could not be bound: %v", err)
	}

	if _, err := h.clientService.Create(c.Request.Context(), form); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			h.renderForm(c, titleNew, clientsPath+"/new", form, ve.Error())
			return
		}
		model.HandleError(c, http.StatusInternalServerError, err, msgCreateError)
		return
	}

	c.Redirect(http.StatusFound, clientsPath)
}

// Edit 编辑客户表单
func (h *ClientHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusOK, clientService.MsgClientNotFound)
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFound(err) {
			c.String(http.StatusOK, clientService.MsgClientNotFound)
			return
		}
		model.HandleError(c, http.StatusOK, err, clientService.MsgClientNotFound)
		return
	}

	h.renderForm(c, titleEdit, editPath(id), model.FormFromClient(client), "")
}

// Update 更新客户
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusOK, clientService.MsgClientNotFound)
		return
	}

	var form model.ClientForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Debugf("Client form could not be bound: %v", err)
	}

	if err := h.clientService.Update(c.Request.Context(), id, form); err != nil {
		var ve *model.ValidationError
		switch {
		case errors.As(err, &ve):
			h.renderForm(c, titleEdit, editPath(id), form, ve.Error())
		case model.IsNotFound(err):
			c.String(http.StatusOK, clientService.MsgClientNotFound)
		default:
			model.HandleError(c, http.StatusInternalServerError, err, msgUpdateError)
		}
		return
	}

	c.Redirect(http.StatusFound, clientsPath)
}

// Delete 删除客户，客户不存在时同样跳转回列表
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.Redirect(http.StatusFound, clientsPath)
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, msgDeleteError)
		return
	}

	c.Redirect(http.StatusFound, clientsPath)
}
