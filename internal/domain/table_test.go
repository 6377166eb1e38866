package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AppendRowPadsWithNull(t *testing.T) {
	tbl := NewTable([]string{"a", "b", "c"})
	tbl.AppendRow([]Value{Text("x")})

	require.Equal(t, 1, tbl.Len())
	assert.Len(t, tbl.Rows[0], 3)
	assert.True(t, tbl.Rows[0][1].IsNull())
	assert.True(t, tbl.Rows[0][2].IsNull())
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl := NewTable([]string{"a"})
	tbl.AppendRow([]Value{Text("x")})

	clone := tbl.Clone()
	clone.AddColumn("b", func(i int, row []Value) Value { return Text("y") })
	clone.Rows[0][0] = Text("changed")

	assert.Equal(t, []string{"a"}, tbl.Columns)
	assert.Equal(t, "x", tbl.Rows[0][0].String())
	assert.Len(t, tbl.Rows[0], 1)
}

func TestTable_WhereAndDistinct(t *testing.T) {
	tbl := NewTable([]string{"sku"})
	for _, s := range []string{"A", " B ", "A", "", "C"} {
		tbl.AppendRow([]Value{Text(s)})
	}

	assert.Equal(t, []string{"A", "B", "C"}, tbl.DistinctText("sku"))

	onlyA := tbl.Where(func(row []Value) bool { return row[0].String() == "A" })
	assert.Equal(t, 2, onlyA.Len())
	assert.Nil(t, tbl.DistinctText("missing"))
}

func TestValue_JSONKeepsNullDistinctFromZero(t *testing.T) {
	row := []Value{Null(), Number(decimal.Zero), Text("abc"), Number(decimal.RequireFromString("-12.5"))}
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `[null, 0, "abc", -12.5]`, string(b))
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, BucketPlatformRecovery, BucketFor(StatusBlank))
	assert.Equal(t, BucketRTO, BucketFor(StatusRTO))
	assert.False(t, BucketPlatformRecovery.IsNamed())
	assert.False(t, BucketUnclassified.IsNamed())
	assert.True(t, BucketDelivered.IsNamed())
}

func TestKindOf(t *testing.T) {
	fe := &FileError{File: "a.csv", Kind: KindIngestion, Err: errors.New("bad")}
	assert.Equal(t, KindIngestion, KindOf(fmt.Errorf("wrap: %w", fe)))
	assert.Equal(t, KindMissingColumn, KindOf(&MissingFieldError{Operation: "x", Fields: []Field{FieldStatus}}))
	assert.Equal(t, KindFileTooLarge, KindOf(fmt.Errorf("upload: %w", ErrFileTooLarge)))

	b, err := json.Marshal(fe)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":"a.csv","kind":"INGESTION_ERROR","message":"bad"}`, string(b))
}
