package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/fisker/webdb-console/pkg/config"
	"github.com/fisker/webdb-console/pkg/database"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const clientsDDL = `CREATE TABLE opt_clientes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	Cliente TEXT NOT NULL,
	Codigo TEXT NOT NULL,
	Data_de_Inicio DATE,
	Data_de_Fim DATE,
	Linha_de_base DECIMAL(10,2),
	Horas_trabalhadas DECIMAL(10,2) DEFAULT 0
)`

var glpiDDL = []string{
	`CREATE TABLE glpi_tickets (id INTEGER PRIMARY KEY, name TEXT, status INTEGER, is_deleted INTEGER, actiontime INTEGER)`,
	`CREATE TABLE glpi_tickets_users (id INTEGER PRIMARY KEY AUTOINCREMENT, tickets_id INTEGER, users_id INTEGER, type INTEGER)`,
	`CREATE TABLE glpi_users (id INTEGER PRIMARY KEY, name TEXT)`,
}

func newTestDB(t *testing.T, ddl ...string) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DBName: ":memory:"})
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	return db
}

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func hours(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func acme() *model.Client {
	return &model.Client{
		Name:          "Acme",
		Code:          "A1",
		StartDate:     date(2024, 1, 1),
		EndDate:       date(2024, 12, 31),
		BaselineHours: hours("100"),
	}
}

func TestClientRepositoryCreateForcesZeroWorkedHours(t *testing.T) {
	repo := NewClientRepository(newTestDB(t, clientsDDL))
	ctx := context.Background()

	client := acme()
	client.WorkedHours = hours("42")
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if client.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	stored, err := repo.GetByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.WorkedHours.Valid || !stored.WorkedHours.Decimal.IsZero() {
		t.Errorf("WorkedHours = %v, expected 0", stored.WorkedHours)
	}
	if stored.Name != "Acme" || stored.Code != "A1" {
		t.Errorf("stored = %+v", stored)
	}
	if stored.StartDateString() != "2024-01-01" || stored.EndDateString() != "2024-12-31" {
		t.Errorf("dates = %s / %s", stored.StartDateString(), stored.EndDateString())
	}
	if !stored.BaselineHours.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("BaselineHours = %v, expected 100", stored.BaselineHours)
	}
}

func TestClientRepositoryList(t *testing.T) {
	repo := NewClientRepository(newTestDB(t, clientsDDL))
	ctx := context.Background()

	for _, name := range []string{"Acme", "Globex"} {
		c := acme()
		c.Name = name
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	clients, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clients) != 2 || clients[0].Name != "Acme" || clients[1].Name != "Globex" {
		t.Errorf("List = %+v", clients)
	}
}

func TestClientRepositoryUpdateKeepsWorkedHours(t *testing.T) {
	db := newTestDB(t, clientsDDL)
	repo := NewClientRepository(db)
	ctx := context.Background()

	client := acme()
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// an external process advances the worked hours
	if err := db.Exec("UPDATE opt_clientes SET Horas_trabalhadas = 30 WHERE id = ?", client.ID).Error; err != nil {
		t.Fatalf("advance hours: %v", err)
	}

	changes := acme()
	changes.Name = "Acme Corp"
	changes.BaselineHours = hours("200")
	changes.WorkedHours = hours("999")

	affected, err := repo.Update(ctx, client.ID, changes)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, expected 1", affected)
	}

	stored, err := repo.GetByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Name != "Acme Corp" {
		t.Errorf("Name = %q, expected Acme Corp", stored.Name)
	}
	if !stored.BaselineHours.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("BaselineHours = %v, expected 200", stored.BaselineHours)
	}
	if !stored.WorkedHours.Decimal.Equal(decimal.NewFromInt(30)) {
		t.Errorf("WorkedHours = %v, expected 30 (untouched)", stored.WorkedHours)
	}
}

func TestClientRepositoryUpdateMissingRow(t *testing.T) {
	repo := NewClientRepository(newTestDB(t, clientsDDL))

	affected, err := repo.Update(context.Background(), 404, acme())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, expected 0", affected)
	}
}

func TestClientRepositoryGetMissing(t *testing.T) {
	repo := NewClientRepository(newTestDB(t, clientsDDL))

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestClientRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewClientRepository(newTestDB(t, clientsDDL))
	ctx := context.Background()

	client := acme()
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, client.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, client.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("client still present: %v", err)
	}
}

func TestDemandRepositorySummarize(t *testing.T) {
	db := newTestDB(t, glpiDDL...)
	seed := []string{
		`INSERT INTO glpi_users (id, name) VALUES (1, 'Ana'), (2, 'Bruno')`,
		`INSERT INTO glpi_tickets (id, name, status, is_deleted, actiontime) VALUES
			(1, 'Acme', 2, 0, 3600),
			(2, 'Acme', 6, 0, 7200),
			(3, 'Acme', 1, 1, 1800),
			(4, 'Globex', 2, 0, 5400),
			(5, 'Acme', 3, 0, 1800)`,
		`INSERT INTO glpi_tickets_users (tickets_id, users_id, type) VALUES
			(1, 1, 2), (2, 1, 2), (3, 1, 2), (4, 2, 2), (5, 1, 2), (1, 2, 1)`,
	}
	for _, stmt := range seed {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rows, err := NewDemandRepository(db, "").Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	expected := []struct {
		analyst string
		client  string
		tickets int64
		hours   string
	}{
		{"Ana", "Acme", 2, "1.5"},
		{"Bruno", "Globex", 1, "1.5"},
	}
	if len(rows) != len(expected) {
		t.Fatalf("rows = %+v, expected %d rows", rows, len(expected))
	}
	for i, want := range expected {
		got := rows[i]
		if got.Analyst != want.analyst || got.Client != want.client || got.Tickets != want.tickets {
			t.Errorf("row %d = %+v, expected %+v", i, got, want)
		}
		if !got.Hours.Equal(decimal.RequireFromString(want.hours)) {
			t.Errorf("row %d hours = %s, expected %s", i, got.Hours, want.hours)
		}
	}
	if rows[0].Baseline() != "2 Acme" {
		t.Errorf("Baseline = %q, expected %q", rows[0].Baseline(), "2 Acme")
	}
}

func TestDemandRepositoryQueryFailure(t *testing.T) {
	// no GLPI tables
	rows, err := NewDemandRepository(newTestDB(t), "").Summarize(context.Background())
	if err == nil {
		t.Fatal("expected an error when the GLPI tables are missing")
	}
	if rows == nil {
		t.Error("rows must be an empty slice, not nil")
	}
}
