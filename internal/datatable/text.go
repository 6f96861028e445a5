package datatable

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteText writes a plain rendition of the view for pipes and logs.
func (v View) WriteText(w io.Writer) error {
	switch v.State {
	case StateLoading, StateEmpty:
		_, err := fmt.Fprintln(w, v.Message)
		return err
	case StateError:
		_, err := fmt.Fprintf(w, "error: %s\n", v.Message)
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(v.Header)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	aligns := make([]int, len(v.Aligns))
	for i, a := range v.Aligns {
		aligns[i] = tablewriterAlign(a)
	}
	tw.SetColumnAlignment(aligns)
	for _, r := range v.Rows {
		tw.Append(r.cellsWithActions(v.HasActions))
	}
	tw.Render()

	if v.Footer == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s (page %d of %d)\n", v.Footer.State.Summary(), v.Footer.State.Current, v.Footer.State.TotalPages)
	return err
}

func tablewriterAlign(a Align) int {
	switch a {
	case AlignCenter:
		return tablewriter.ALIGN_CENTER
	case AlignRight:
		return tablewriter.ALIGN_RIGHT
	default:
		return tablewriter.ALIGN_LEFT
	}
}
