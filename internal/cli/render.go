package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderPlainTable renders headers and rows kubectl-style: no box-drawing
// characters, columns padded with spaces. Used by `list --plain` for piping
// into grep/awk/cut or terminals that mangle box-drawing Unicode.
func RenderPlainTable(w io.Writer, headers []string, rows [][]string) {
	t := NewPlainTableWriter(w)
	t.SetHeaders(headers)
	for _, r := range rows {
		t.AppendRow(r)
	}
	t.Render()
}

// RenderTable renders headers and rows as a bordered table, used by the
// `list` verb (spec.md §6.1) to present configs/variants/targets/scripts.
// RenderPlainTable remains available for callers that want the
// kubectl-style unboxed rendering instead (`list --plain`).
func RenderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		t.AppendRow(row)
	}

	t.Render()
}
