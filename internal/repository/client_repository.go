package repository

import (
	"context"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// List 获取全部客户
func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

// Create 创建客户，已工作小时数固定为 0
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	client.ID = 0
	client.WorkedHours = decimal.NewNullDecimal(decimal.Zero)
	return r.db.WithContext(ctx).Create(client).Error
}

// GetByID 根据ID获取客户
func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Update 更新客户的可编辑字段，返回匹配的行数
// Horas_trabalhadas 由外部流程维护，这里不更新
func (r *ClientRepository) Update(ctx context.Context, id uint, client *model.Client) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"Cliente":        client.Name,
			"Codigo":         client.Code,
			"Data_de_Inicio": client.StartDate,
			"Data_de_Fim":    client.EndDate,
			"Linha_de_base":  client.BaselineHours,
		})
	return result.RowsAffected, result.Error
}

// Delete 删除客户；记录不存在时不报错
func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id).Error
}
