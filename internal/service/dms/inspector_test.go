package dms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fisker/webdb-console/internal/model"
	"github.com/go-sql-driver/mysql"
)

func newMockInspector(t *testing.T, driver string) (*Inspector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	executor, err := NewExecutor(db, driver, time.Second)
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}
	return NewInspector(executor), mock
}

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"opt_clientes", true},
		{"glpi_tickets", true},
		{"Table$1", true},
		{"", false},
		{"users; DROP TABLE users", false},
		{"glpi.glpi_tickets", false},
		{"na`me", false},
		{"percent%", false},
		{"a23456789012345678901234567890123456789012345678901234567890abcd", true},
		{"a23456789012345678901234567890123456789012345678901234567890abcde", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIdentifier(tt.name); got != tt.expected {
				t.Errorf("ValidIdentifier(%q) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"clients", "clients"},
		{"opt_clientes", `opt\_clientes`},
		{"100%", `100\%`},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeLike(tt.input); got != tt.expected {
				t.Errorf("escapeLike(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFetchSampleEmptyName(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")

	_, err := inspector.FetchSample(context.Background(), "   ")

	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *model.ValidationError, got %v", err)
	}
	if ve.Message != MsgTableRequired {
		t.Errorf("Message = %q, expected %q", ve.Message, MsgTableRequired)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestFetchSampleUnknownTableSkipsDataQuery(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")
	mock.ExpectQuery("SHOW TABLES LIKE ?").
		WithArgs(`missing\_table`).
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}))

	_, err := inspector.FetchSample(context.Background(), "missing_table")

	if !model.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFetchSampleInvalidIdentifierNeverQueries(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")

	_, err := inspector.FetchSample(context.Background(), "clients; DROP TABLE clients")

	if !model.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestFetchSampleCatalogFailureReportsNotFound(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")
	mock.ExpectQuery("SHOW TABLES LIKE ?").
		WithArgs("clients").
		WillReturnError(&mysql.MySQLError{Number: 1045, Message: "Access denied"})

	_, err := inspector.FetchSample(context.Background(), "clients")

	if !model.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFetchSampleEmptyTable(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")
	mock.ExpectQuery("SHOW TABLES LIKE ?").
		WithArgs("audit").
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow([]byte("audit")))
	mock.ExpectQuery("SELECT * FROM `audit` LIMIT 100").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event"}))

	snapshot, err := inspector.FetchSample(context.Background(), "audit")
	if err != nil {
		t.Fatalf("FetchSample returned error: %v", err)
	}

	if len(snapshot.Columns) != 0 || len(snapshot.Rows) != 0 {
		t.Errorf("expected empty snapshot, got columns=%v rows=%v", snapshot.Columns, snapshot.Rows)
	}
	if snapshot.Columns == nil || snapshot.Rows == nil {
		t.Error("empty snapshot must use empty slices, not nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFetchSampleRows(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")
	created := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SHOW TABLES LIKE ?").
		WithArgs(`opt\_clientes`).
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow([]byte("opt_clientes")))
	mock.ExpectQuery("SELECT * FROM `opt_clientes` LIMIT 100").
		WillReturnRows(sqlmock.NewRows([]string{"id", "Cliente", "Codigo", "criado_em"}).
			AddRow(int64(1), []byte("Acme"), nil, created).
			AddRow(int64(2), []byte("Globex"), []byte("G1"), created))

	snapshot, err := inspector.FetchSample(context.Background(), "opt_clientes")
	if err != nil {
		t.Fatalf("FetchSample returned error: %v", err)
	}

	expectedColumns := []string{"id", "Cliente", "Codigo", "criado_em"}
	if len(snapshot.Columns) != len(expectedColumns) {
		t.Fatalf("Columns = %v, expected %v", snapshot.Columns, expectedColumns)
	}
	for i, col := range expectedColumns {
		if snapshot.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, expected %q", i, snapshot.Columns[i], col)
		}
	}

	if len(snapshot.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, expected 2", len(snapshot.Rows))
	}
	first := snapshot.Rows[0]
	if first["Cliente"] != "Acme" {
		t.Errorf("Cliente = %#v, expected string Acme", first["Cliente"])
	}
	if first["Codigo"] != nil {
		t.Errorf("Codigo = %#v, expected nil", first["Codigo"])
	}
	if first["criado_em"] != "2024-03-05 10:30:00" {
		t.Errorf("criado_em = %#v, expected formatted timestamp", first["criado_em"])
	}

	values := snapshot.Values(1)
	if values[1] != "Globex" || values[2] != "G1" {
		t.Errorf("Values(1) = %v", values)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFetchSampleDataQueryFailure(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")
	mock.ExpectQuery("SHOW TABLES LIKE ?").
		WithArgs("locked").
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow([]byte("locked")))
	mock.ExpectQuery("SELECT * FROM `locked` LIMIT 100").
		WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})

	_, err := inspector.FetchSample(context.Background(), "locked")

	var qe *model.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *model.QueryError, got %v", err)
	}
	if qe.Kind != model.QueryErrTimeout {
		t.Errorf("Kind = %q, expected %q", qe.Kind, model.QueryErrTimeout)
	}
}

func TestFetchSamplePostgresDialect(t *testing.T) {
	inspector, mock := newMockInspector(t, "postgres")
	mock.ExpectQuery(`SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = current_schema() AND tablename LIKE $1`).
		WithArgs("clients").
		WillReturnRows(sqlmock.NewRows([]string{"tablename"}).AddRow("clients"))
	mock.ExpectQuery(`SELECT * FROM "clients" LIMIT 100`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	snapshot, err := inspector.FetchSample(context.Background(), "clients")
	if err != nil {
		t.Fatalf("FetchSample returned error: %v", err)
	}
	if snapshot.Rows[0]["id"] != int64(7) {
		t.Errorf("id = %#v, expected 7", snapshot.Rows[0]["id"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTableExistsRequiresExactMatch(t *testing.T) {
	inspector, mock := newMockInspector(t, "mysql")
	mock.ExpectQuery("SHOW TABLES LIKE ?").
		WithArgs("client").
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow([]byte("clients")))

	if inspector.TableExists(context.Background(), "client") {
		t.Error("TableExists matched a different table name")
	}
}
