package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SStyles93/csvxl/pkg/csvxl/model"
)

func TestReconcile_NoUpdates(t *testing.T) {
	existing := model.NewWorkbook()
	a := table("A", []string{"x"})
	b := table("B", []string{"x"})
	c := table("C", []string{"x"})
	existing.Set(a)
	existing.Set(b)
	existing.Set(c)

	final := Reconcile(existing, model.NewWorkbook())

	assert.Equal(t, []string{"A", "B", "C"}, final.Names(),
		"reconciling with no updates reproduces the workbook")
	got, _ := final.Get("B")
	assert.Same(t, b, got, "untouched tables are carried over, not copied")
}

func TestReconcile_UpdatedFirstThenUntouched(t *testing.T) {
	existing := model.NewWorkbook()
	existing.Set(table("A", []string{"x"}))
	existing.Set(table("B", []string{"x"}))
	existing.Set(table("C", []string{"x"}))

	updatedB := table("B", []string{"x"}, model.Row{"x": int64(1)})
	updatedD := table("D", []string{"x"})
	updated := model.NewWorkbook()
	updated.Set(updatedB)
	updated.Set(updatedD)

	final := Reconcile(existing, updated)

	require.Equal(t, []string{"B", "D", "A", "C"}, final.Names())
	got, _ := final.Get("B")
	assert.Same(t, updatedB, got, "the updated table wins over the existing one")
	assert.Equal(t, 4, final.Len(), "no sheet name is ever dropped")
}

func TestReconcile_NilExisting(t *testing.T) {
	updated := model.NewWorkbook()
	updated.Set(table("X", []string{"a"}))

	final := Reconcile(nil, updated)
	assert.Equal(t, []string{"X"}, final.Names())
}

func TestReconcile_NilBoth(t *testing.T) {
	final := Reconcile(nil, nil)
	assert.Equal(t, 0, final.Len())
}
