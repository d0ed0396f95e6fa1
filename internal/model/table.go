package model

// SampleLimit caps the rows returned by a table search.
const SampleLimit = 100

// TableSnapshot is a bounded read of an arbitrary table.
type TableSnapshot struct {
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Values returns the cells of row i in column order, for positional rendering.
func (s *TableSnapshot) Values(i int) []any {
	values := make([]any, len(s.Columns))
	for j, col := range s.Columns {
		values[j] = s.Rows[i][col]
	}
	return values
}
