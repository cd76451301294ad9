package bubbletea

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/yasmin-chat/yasmin"
)

var _ list.DefaultItem = summaryItem{}

// summaryItem adapts a conversation summary to the bubbles list.
type summaryItem struct {
	summary yasmin.Summary
}

func (i summaryItem) Title() string { return i.summary.Title }

func (i summaryItem) Description() string {
	if i.summary.UpdatedAt.IsZero() {
		return i.summary.ID
	}
	return i.summary.UpdatedAt.Format("2006-01-02 15:04")
}

func (i summaryItem) FilterValue() string { return i.summary.Title }

// newPicker builds the conversation picker.
func newPicker() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "المحادثات"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// pickerItems converts summaries to list items.
func pickerItems(sums []yasmin.Summary) []list.Item {
	items := make([]list.Item, len(sums))
	for i, s := range sums {
		items[i] = summaryItem{summary: s}
	}
	return items
}

// selectedSummary returns the highlighted summary, if any.
func selectedSummary(l list.Model) (yasmin.Summary, bool) {
	item, ok := l.SelectedItem().(summaryItem)
	if !ok {
		return yasmin.Summary{}, false
	}
	return item.summary, true
}
