package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DemandRow 分析师/客户维度的工单汇总
type DemandRow struct {
	Analyst string          `json:"ANALISTA" gorm:"column:analyst"`
	Client  string          `json:"CLIENTE" gorm:"column:client"`
	Tickets int64           `json:"QTD" gorm:"column:tickets"`
	Hours   decimal.Decimal `json:"HH" gorm:"column:hours"`
}

// Baseline is the "<count> <client>" label shown in the LINHA DE BASE column.
func (d DemandRow) Baseline() string {
	return fmt.Sprintf("%d %s", d.Tickets, d.Client)
}
