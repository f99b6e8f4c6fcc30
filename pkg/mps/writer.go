package mps

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	objectiveRow = "OBJECTIV"
	ignored      = "________"
	empty        = ""
)

// String renders the model in the fixed-column exchange format
func (model *Model) String() string {
	var builder strings.Builder
	model.WriteTo(&builder) // strings.Builder never fails
	return builder.String()
}

// WriteTo renders the model in the fixed-column exchange format. Sections follow registration
// order and ENDATA is written without a trailing newline.
func (model *Model) WriteTo(w io.Writer) (int64, error) {
	out := &sectionWriter{w: bufio.NewWriter(w)}

	out.printf("%-14s%s\n", "NAME", model.name)

	//** ROWS
	out.printf("ROWS\n")
	out.printf("%1s%-3s%s\n", empty, "N", objectiveRow)
	for _, constr := range model.constrs {
		out.comment(constr.Desc)
		out.printf("%1s%-3s%s\n", empty, constr.Type.Code(), constr.Name)
	}

	//** COLUMNS
	out.printf("COLUMNS\n")
	for _, variable := range model.vars {
		out.comment(variable.Desc)
		if variable.HasObj {
			out.printf("%4s%-10s%-10s%d\n", empty, variable.Name, objectiveRow, variable.Obj)
		}
		for _, nonzero := range variable.Nonzeros {
			out.printf("%4s%-10s%-10s%d\n", empty, variable.Name, model.constrs[nonzero.Constr].Name, nonzero.Coef)
		}
	}

	//** RHS
	out.printf("RHS\n")
	for _, constr := range model.constrs {
		out.printf("%4s%-10s%-10s%d\n", empty, ignored, constr.Name, constr.RHS)
	}

	//** BOUNDS (every variable is binary)
	out.printf("BOUNDS\n")
	for _, variable := range model.vars {
		out.printf("%1s%-3s%-10s%s\n", empty, "BV", ignored, variable.Name)
	}

	out.printf("ENDATA")
	return out.flush()
}

// sectionWriter keeps the first write error and the byte count so sections can be written
// without checking every line
type sectionWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (out *sectionWriter) printf(format string, args ...any) {
	if out.err != nil {
		return
	}
	n, err := fmt.Fprintf(out.w, format, args...)
	out.n += int64(n)
	out.err = err
}

func (out *sectionWriter) comment(desc string) {
	if desc != "" {
		out.printf("* %s\n", strings.Join(strings.Fields(desc), " "))
	}
}

func (out *sectionWriter) flush() (int64, error) {
	if out.err != nil {
		return out.n, out.err
	}
	return out.n, out.w.Flush()
}
