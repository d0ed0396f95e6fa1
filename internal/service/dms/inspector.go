package dms

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/fisker/webdb-console/pkg/logger"
)

// User facing messages of the table search.
const (
	MsgTableRequired = "Digite o nome da tabela."
	MsgTableNotFound = "Tabela não encontrada."
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_$]{1,64}$`)

// ValidIdentifier reports whether name may be interpolated as a table identifier.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Inspector 表检查：先查目录确认表存在，再做有界读取
type Inspector struct {
	executor QueryExecutor
}

func NewInspector(executor QueryExecutor) *Inspector {
	return &Inspector{executor: executor}
}

// TableExists looks name up in the engine catalog. Names outside the identifier charset are
// rejected without a query. A failed catalog query is logged and reported as absent.
func (s *Inspector) TableExists(ctx context.Context, name string) bool {
	if !ValidIdentifier(name) {
		return false
	}

	rs, err := s.executor.Query(ctx, s.executor.Dialect().CatalogLookup(), escapeLike(name))
	if err != nil {
		logger.Warnf("Catalog lookup for table %q failed: %v", name, err)
		return false
	}

	for _, row := range rs.Rows {
		if len(row) == 0 {
			continue
		}
		if found, ok := row[0].(string); ok && strings.EqualFold(found, name) {
			return true
		}
	}
	return false
}

// FetchSample returns up to model.SampleLimit rows of an existing table.
func (s *Inspector) FetchSample(ctx context.Context, name string) (*model.TableSnapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &model.ValidationError{Message: MsgTableRequired, Fields: []string{"table"}}
	}

	if !s.TableExists(ctx, name) {
		return nil, &model.NotFoundError{Resource: "table", Message: MsgTableNotFound}
	}

	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", s.executor.Dialect().QuoteIdentifier(name), model.SampleLimit)
	rs, err := s.executor.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	snapshot := &model.TableSnapshot{Name: name, Columns: []string{}, Rows: []map[string]any{}}
	if len(rs.Rows) == 0 {
		return snapshot, nil
	}

	snapshot.Columns = rs.Columns
	for _, row := range rs.Rows {
		record := make(map[string]any, len(rs.Columns))
		for i, col := range rs.Columns {
			record[col] = row[i]
		}
		snapshot.Rows = append(snapshot.Rows, record)
	}
	return snapshot, nil
}
