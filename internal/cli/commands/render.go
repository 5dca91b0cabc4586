package commands

import (
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// isTTY reports whether w is an interactive terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable builds a table writer mirrored to w. Styled output is used
// on interactive terminals unless plain output is forced.
func newTable(w io.Writer, plain bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if plain || !isTTY(w) {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}

// headerRow converts column names like "source_rows" into display
// headers like "Source Rows".
func headerRow(cols ...string) table.Row {
	row := make(table.Row, len(cols))
	for i, col := range cols {
		row[i] = titleCaser.String(strings.ReplaceAll(col, "_", " "))
	}
	return row
}
