package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/fisker/webdb-console/internal/repository"
	"github.com/fisker/webdb-console/pkg/database"
	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Validation messages shown above the client form.
const (
	MsgRequiredFields  = "Preencha todos os campos obrigatórios."
	MsgInvalidDate     = "Data inválida, use o formato AAAA-MM-DD."
	MsgInvalidBaseline = "Linha de base deve ser um número maior que zero."
	MsgClientNotFound  = "Cliente não encontrado"
)

var validate = validator.New()

type ClientService struct {
	repo *repository.ClientRepository
}

func NewClientService(repo *repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// ParseForm validates the posted form and converts it to a Client.
// Every problem is reported at once so the form can be re-rendered with all fields marked.
func ParseForm(form model.ClientForm) (*model.Client, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Code = strings.TrimSpace(form.Code)
	form.StartDate = strings.TrimSpace(form.StartDate)
	form.EndDate = strings.TrimSpace(form.EndDate)
	form.BaselineHours = strings.TrimSpace(form.BaselineHours)

	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, formField(fe.StructField()))
		}
		return nil, &model.ValidationError{Message: MsgRequiredFields, Fields: fields}
	}

	client := &model.Client{Name: form.Name, Code: form.Code}

	var badDates []string
	start, err := time.ParseInLocation(model.DateLayout, form.StartDate, time.UTC)
	if err != nil {
		badDates = append(badDates, "Data_de_Inicio")
	}
	end, err := time.ParseInLocation(model.DateLayout, form.EndDate, time.UTC)
	if err != nil {
		badDates = append(badDates, "Data_de_Fim")
	}
	if len(badDates) > 0 {
		return nil, &model.ValidationError{Message: MsgInvalidDate, Fields: badDates}
	}
	client.StartDate = datatypes.Date(start)
	client.EndDate = datatypes.Date(end)

	baseline, err := decimal.NewFromString(strings.Replace(form.BaselineHours, ",", ".", 1))
	if err != nil || !baseline.IsPositive() {
		return nil, &model.ValidationError{Message: MsgInvalidBaseline, Fields: []string{"Linha_de_base"}}
	}
	client.BaselineHours = decimal.NewNullDecimal(baseline)

	return client, nil
}

func formField(structField string) string {
	switch structField {
	case "Name":
		return "Cliente"
	case "Code":
		return "Codigo"
	case "StartDate":
		return "Data_de_Inicio"
	case "EndDate":
		return "Data_de_Fim"
	case "BaselineHours":
		return "Linha_de_base"
	}
	return structField
}

// List 获取客户列表并计算使用率
func (s *ClientService) List(ctx context.Context) ([]model.ClientView, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return []model.ClientView{}, database.WrapError(err)
	}

	views := make([]model.ClientView, 0, len(clients))
	for _, c := range clients {
		view := model.NewClientView(c)
		if view.DataError != "" {
			logger.Warnf("Client %d has an unusable baseline: %s", c.ID, view.DataError)
		}
		views = append(views, view)
	}
	return views, nil
}

// Create 创建客户
func (s *ClientService) Create(ctx context.Context, form model.ClientForm) (*model.Client, error) {
	client, err := ParseForm(form)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, database.WrapError(err)
	}
	logger.Infof("Client created: id=%d name=%s", client.ID, client.Name)
	return client, nil
}

// Get 获取单个客户
func (s *ClientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &model.NotFoundError{Resource: "client", Message: MsgClientNotFound}
		}
		return nil, database.WrapError(err)
	}
	return client, nil
}

// Update 更新客户，已工作小时数保持不变
func (s *ClientService) Update(ctx context.Context, id uint, form model.ClientForm) error {
	client, err := ParseForm(form)
	if err != nil {
		return err
	}
	affected, err := s.repo.Update(ctx, id, client)
	if err != nil {
		return database.WrapError(err)
	}
	if affected == 0 {
		return &model.NotFoundError{Resource: "client", Message: MsgClientNotFound}
	}
	logger.Infof("Client updated: id=%d", id)
	return nil
}

// Delete 删除客户；不存在的客户视为已删除
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return database.WrapError(err)
	}
	logger.Infof("Client deleted: id=%d", id)
	return nil
}
