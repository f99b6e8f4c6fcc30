package mps

// Entry is a single nonzero of a row: a coefficient applied to a variable
type Entry struct {
	Coef int64
	Var  int
}

// Cols accumulates the nonzeros of one constraint or of the objective.
// Entries are kept in push order and repeated variables are neither merged nor summed.
type Cols struct {
	entries []Entry
}

// NewCols returns an empty accumulator
func NewCols() Cols {
	return Cols{}
}

// Push appends coef applied to variable
func (cols *Cols) Push(coef int64, variable int) {
	cols.entries = append(cols.entries, Entry{Coef: coef, Var: variable})
}

// Entries returns the nonzeros in push order
func (cols Cols) Entries() []Entry {
	return cols.entries
}

// Len returns the number of pushed entries, duplicates included
func (cols Cols) Len() int {
	return len(cols.entries)
}
