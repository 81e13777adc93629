package merge

import "github.com/SStyles93/csvxl/pkg/csvxl/model"

// Reconcile builds the final workbook from an existing workbook and the
// updated sheets of a merge run: updated sheets first in update order, then
// every untouched existing sheet in its original order. No sheet name is
// ever dropped; untouched tables are carried over as-is. Either argument
// may be nil.
func Reconcile(existing, updated *model.Workbook) *model.Workbook {
	final := model.NewWorkbook()
	if updated != nil {
		for _, t := range updated.Tables() {
			final.Set(t)
		}
	}
	if existing != nil {
		for _, t := range existing.Tables() {
			if !final.Has(t.Name) {
				final.Set(t)
			}
		}
	}
	return final
}
