package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/touchtris/internal/storage"
)

// maxResults is how many ledger rows are loaded.
const maxResults = 20

// LedgerView shows the best games recorded since the process started.
type LedgerView struct {
	store   *storage.Store
	table   table.Model
	entries []storage.ResultEntry
	height  int
}

// NewLedgerView creates a view over store. A nil store shows nothing.
func NewLedgerView(store *storage.Store, height int) LedgerView {
	v := LedgerView{store: store, height: height}
	v.table = v.createTable()
	return v
}

// createTable creates a new table with the ledger columns.
func (v *LedgerView) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 10},
		{Title: "Lines", Width: 5},
		{Title: "1/2/3/4", Width: 11},
		{Title: "Time", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(v.height-2, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return t
}

// Refresh reloads the rows from the store.
func (v *LedgerView) Refresh() error {
	if v.store == nil {
		v.entries = nil
		v.updateTableRows()
		return nil
	}

	entries, err := v.store.TopResults(maxResults)
	if err != nil {
		return err
	}
	v.entries = entries
	v.updateTableRows()
	return nil
}

// updateTableRows updates the table with current entries.
func (v *LedgerView) updateTableRows() {
	rows := make([]table.Row, len(v.entries))
	for i, e := range v.entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			e.Player,
			fmt.Sprintf("%d", e.Lines),
			fmt.Sprintf("%d/%d/%d/%d", e.Singles, e.Doubles, e.Triples, e.Tetrises),
			fmt.Sprintf("%ds", e.DurationMs/1000),
		}
	}
	v.table.SetRows(rows)
	v.table.GotoTop()
}

// Len returns the number of rows loaded.
func (v LedgerView) Len() int {
	return len(v.entries)
}

// View renders the ledger.
func (v LedgerView) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(v.entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
		return style.Render(empty.Render("No games finished yet."))
	}
	return style.Render(v.table.View())
}
