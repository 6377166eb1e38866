package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind distinguishes an absent cell from text and numbers.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindNumber
)

// Value is a single table cell. Raw always holds the source text so that
// identifiers with leading zeros survive numeric coercion.
type Value struct {
	Kind   ValueKind
	Raw    string
	Number decimal.Decimal
}

func Null() Value {
	return Value{Kind: KindNull}
}

func Text(s string) Value {
	return Value{Kind: KindText, Raw: s}
}

func Number(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Raw: d.String(), Number: d}
}

// NumberWithRaw keeps the original spelling of a coerced cell.
func NumberWithRaw(d decimal.Decimal, raw string) Value {
	return Value{Kind: KindNumber, Raw: raw, Number: d}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// IsBlank reports a null cell or one holding only whitespace.
func (v Value) IsBlank() bool {
	return v.Kind == KindNull || strings.TrimSpace(v.Raw) == ""
}

func (v Value) String() string {
	if v.Kind == KindNull {
		return ""
	}
	return v.Raw
}

// Decimal returns the numeric value, if the cell is numeric.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.Kind != KindNumber {
		return decimal.Zero, false
	}
	return v.Number, true
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		return []byte(v.Number.String()), nil
	default:
		return json.Marshal(v.Raw)
	}
}

// Table is an in-memory rectangular table. Every row has len(Columns) cells.
type Table struct {
	Columns []string  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: make([][]Value, 0)}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of an exact column name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendRow pads or truncates row to the table width.
func (t *Table) AppendRow(row []Value) {
	out := make([]Value, len(t.Columns))
	copy(out, row)
	for i := len(row); i < len(out); i++ {
		out[i] = Null()
	}
	t.Rows = append(t.Rows, out)
}

// AddColumn appends a column whose cells are computed from each row.
func (t *Table) AddColumn(name string, fill func(i int, row []Value) Value) {
	t.Columns = append(t.Columns, name)
	for i, row := range t.Rows {
		t.Rows[i] = append(row, fill(i, row))
	}
}

// Cell returns the named cell of row, or a null value when the column is absent.
func (t *Table) Cell(row []Value, column string) Value {
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(row) {
		return Null()
	}
	return row[idx]
}

// Clone deep-copies the table so derived columns never leak into the source.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	out.Rows = make([][]Value, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]Value, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// Where returns a view holding the rows accepted by keep. Row slices are shared.
func (t *Table) Where(keep func(row []Value) bool) *Table {
	out := NewTable(t.Columns)
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// DistinctText lists the distinct non-blank trimmed values of a column in first-seen order.
func (t *Table) DistinctText(column string) []string {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, row := range t.Rows {
		s := strings.TrimSpace(row[idx].String())
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// NamedTable is a table with the title it is exported under.
type NamedTable struct {
	Name  string `json:"name"`
	Table *Table `json:"table"`
}
