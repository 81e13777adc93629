package model

// Workbook is an ordered collection of tables keyed by sheet name.
//
// Sheet names are case-sensitive and unique within a workbook; iteration
// follows insertion order.
type Workbook struct {
	order  []string
	sheets map[string]*Table
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{
		sheets: make(map[string]*Table),
	}
}

// Set stores the table under its name, replacing any table already stored
// there. A first-time name appends to the sheet order.
func (w *Workbook) Set(t *Table) {
	if _, ok := w.sheets[t.Name]; !ok {
		w.order = append(w.order, t.Name)
	}
	w.sheets[t.Name] = t
}

// Get returns the table stored under name.
func (w *Workbook) Get(name string) (*Table, bool) {
	t, ok := w.sheets[name]
	return t, ok
}

// Has reports whether a sheet with the given name exists.
func (w *Workbook) Has(name string) bool {
	_, ok := w.sheets[name]
	return ok
}

// Names returns the sheet names in insertion order.
func (w *Workbook) Names() []string {
	return append([]string{}, w.order...)
}

// Tables returns the tables in insertion order.
func (w *Workbook) Tables() []*Table {
	out := make([]*Table, len(w.order))
	for i, name := range w.order {
		out[i] = w.sheets[name]
	}
	return out
}

// Len returns the number of sheets.
func (w *Workbook) Len() int {
	return len(w.order)
}
