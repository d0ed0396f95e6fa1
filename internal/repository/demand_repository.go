package repository

import (
	"context"
	"fmt"

	"github.com/fisker/webdb-console/internal/model"
	"gorm.io/gorm"
)

// GLPI ticket status "closed" and the ticket/user link type of the assigned technician.
const (
	glpiStatusClosed   = 6
	glpiAssignedToType = 2
)

type DemandRepository struct {
	db    *gorm.DB
	query string
}

// NewDemandRepository builds the report query against the GLPI tables in schema.
// schema is trusted configuration; an empty schema uses the connected database.
func NewDemandRepository(db *gorm.DB, schema string) *DemandRepository {
	prefix := ""
	if schema != "" {
		prefix = schema + "."
	}
	query := fmt.Sprintf(`
		SELECT
			gu.name AS analyst,
			gt.name AS client,
			COUNT(gt.id) AS tickets,
			ROUND(COALESCE(SUM(gt.actiontime), 0) / 3600.0, 2) AS hours
		FROM %[1]sglpi_tickets gt
		JOIN %[1]sglpi_tickets_users gtu
			ON gtu.tickets_id = gt.id
			AND gtu.type = ?
		JOIN %[1]sglpi_users gu
			ON gu.id = gtu.users_id
		WHERE gt.status <> ?
			AND gt.is_deleted = 0
		GROUP BY gu.name, gt.name
		ORDER BY gu.name, gt.name`, prefix)

	return &DemandRepository{db: db, query: query}
}

// Summarize 按分析师和客户汇总未关闭的工单
func (r *DemandRepository) Summarize(ctx context.Context) ([]model.DemandRow, error) {
	rows := []model.DemandRow{}
	err := r.db.WithContext(ctx).Raw(r.query, glpiAssignedToType, glpiStatusClosed).Scan(&rows).Error
	return rows, err
}
