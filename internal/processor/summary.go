package processor

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary holds the counters of one enrichment pass
type Summary struct {
	Total             int
	AlreadyTranslated int
	NewlyTranslated   int
	Errors            int
	Interrupted       bool
}

// TotalTranslated returns the number of entries that now carry Spanish fields
func (s Summary) TotalTranslated() int {
	return s.AlreadyTranslated + s.NewlyTranslated
}

// Table renders the summary for terminal output
func (s Summary) Table() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Translation Summary")

	tw.AppendRows([]table.Row{
		{"Total entries", strconv.Itoa(s.Total)},
		{"Already translated", strconv.Itoa(s.AlreadyTranslated)},
		{"Newly translated", strconv.Itoa(s.NewlyTranslated)},
		{"Errors", strconv.Itoa(s.Errors)},
		{"Total with Spanish", strconv.Itoa(s.TotalTranslated())},
	})
	if s.Interrupted {
		tw.AppendRow(table.Row{"Interrupted", "yes"})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	return tw.Render()
}
