package report

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/guimove/ocpfleet/internal/model"
)

// TableReporter renders the fleet report as a bordered grid for the terminal.
type TableReporter struct {
	w io.Writer
}

// NewTableReporter creates a table reporter writing to w.
func NewTableReporter(w io.Writer) *TableReporter {
	return &TableReporter{w: w}
}

func (r *TableReporter) Report(ctx context.Context, fr *model.FleetReport) error {
	t := table.NewWriter()

	style := table.StyleDefault
	style.Options.SeparateRows = true
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	t.AppendHeader(toRow(fr.Header()))
	for _, rec := range fr.Records() {
		t.AppendRow(toRow(rec))
	}

	if _, err := fmt.Fprintln(r.w, t.Render()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
