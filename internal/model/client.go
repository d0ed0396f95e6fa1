package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Client usage status buckets.
const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"
)

// DateLayout is the layout used by the client form date inputs.
const DateLayout = "2006-01-02"

var (
	yellowThreshold = decimal.NewFromInt(50)
	redThreshold    = decimal.NewFromInt(75)
	hundred         = decimal.NewFromInt(100)
)

// Client is a row of opt_clientes.
type Client struct {
	ID            uint                `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name          string              `json:"Cliente" gorm:"column:Cliente;type:varchar(255);not null"`
	Code          string              `json:"Codigo" gorm:"column:Codigo;type:varchar(100);not null"`
	StartDate     datatypes.Date      `json:"Data_de_Inicio" gorm:"column:Data_de_Inicio"`
	EndDate       datatypes.Date      `json:"Data_de_Fim" gorm:"column:Data_de_Fim"`
	BaselineHours decimal.NullDecimal `json:"Linha_de_base" gorm:"column:Linha_de_base;type:decimal(10,2)"`
	WorkedHours   decimal.NullDecimal `json:"Horas_trabalhadas" gorm:"column:Horas_trabalhadas;type:decimal(10,2)"` // advanced by external processes only
}

func (Client) TableName() string {
	return "opt_clientes"
}

// StartDateString formats the start date for forms and listings.
func (c Client) StartDateString() string {
	return formatDate(c.StartDate)
}

// EndDateString formats the end date for forms and listings.
func (c Client) EndDateString() string {
	return formatDate(c.EndDate)
}

func formatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ClientForm carries the raw values posted by the client form.
// Field names follow the storage columns so the HTML form and JSON bodies share one shape.
type ClientForm struct {
	Name          string `form:"Cliente" json:"Cliente" validate:"required"`
	Code          string `form:"Codigo" json:"Codigo" validate:"required"`
	StartDate     string `form:"Data_de_Inicio" json:"Data_de_Inicio" validate:"required"`
	EndDate       string `form:"Data_de_Fim" json:"Data_de_Fim" validate:"required"`
	BaselineHours string `form:"Linha_de_base" json:"Linha_de_base" validate:"required"`
}

// FormFromClient fills a form with the stored values of c.
func FormFromClient(c *Client) ClientForm {
	return ClientForm{
		Name:          c.Name,
		Code:          c.Code,
		StartDate:     c.StartDateString(),
		EndDate:       c.EndDateString(),
		BaselineHours: c.BaselineHours.Decimal.String(),
	}
}

// ClientView is a client row plus its derived usage figures.
type ClientView struct {
	Client
	UsagePercent decimal.Decimal `json:"Percentual_usado"`
	Status       string          `json:"Status"`
	DataError    string          `json:"DataError,omitempty"`
}

// NewClientView derives usage percent and status for c.
// A non-positive baseline cannot be divided by; the row is kept and DataError is set instead.
func NewClientView(c Client) ClientView {
	view := ClientView{Client: c}
	usage, err := UsagePercent(c.WorkedHours, c.BaselineHours)
	if err != nil {
		view.DataError = err.Error()
		return view
	}
	view.UsagePercent = usage
	view.Status = UsageStatus(usage)
	return view
}

// UsagePercent returns round(worked * 100 / baseline, 2). A NULL worked value counts as zero.
func UsagePercent(worked, baseline decimal.NullDecimal) (decimal.Decimal, error) {
	if !baseline.Valid || !baseline.Decimal.IsPositive() {
		return decimal.Zero, &DataError{
			Field:   "Linha_de_base",
			Message: "linha de base deve ser maior que zero",
		}
	}
	return worked.Decimal.Mul(hundred).Div(baseline.Decimal).Round(2), nil
}

// UsageStatus buckets a usage percentage: below 50 green, below 75 yellow, otherwise red.
func UsageStatus(usage decimal.Decimal) string {
	switch {
	case usage.LessThan(yellowThreshold):
		return StatusGreen
	case usage.LessThan(redThreshold):
		return StatusYellow
	default:
		return StatusRed
	}
}
