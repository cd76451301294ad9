// Package offline answers chat messages from a fixed Arabic phrase
// table while the service is unreachable.
package offline

import (
	"strings"

	"github.com/yasmin-chat/yasmin"
)

// Interface compliance check.
var _ yasmin.Responder = (*Table)(nil)

// DefaultReply is the apology used when no phrase matches.
const DefaultReply = "أعتذر، لا أستطيع المساعدة الآن. حاول مرة أخرى لاحقًا."

// pair is one phrase and its canned reply. Order matters: the first
// matching phrase wins.
type pair struct {
	phrase string
	reply  string
}

var pairs = []pair{
	{"السلام عليكم", "وعليكم السلام!"},
	{"كيف حالك", "بخير، شكراً لك!"},
	{"شكرا", "عفواً!"},
}

// Table implements [yasmin.Responder] with case-folded substring
// matching against the phrase list.
type Table struct{}

// NewTable returns the canned-reply table.
func NewTable() *Table {
	return &Table{}
}

// Reply returns the canned reply for text. Unmatched input gets
// DefaultReply, so there is always an answer.
func (t *Table) Reply(text string) string {
	folded := strings.ToLower(text)
	for _, p := range pairs {
		if strings.Contains(folded, strings.ToLower(p.phrase)) {
			return p.reply
		}
	}
	return DefaultReply
}
