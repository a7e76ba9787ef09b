package models

import "strings"

// Quote lifecycle states. The Korean labels are the canonical stored
// values: they appear verbatim in the status column, as status_history
// keys, and in API payloads, matching what the frontend renders.
const (
	StatusReceived    = "접수"
	StatusSent        = "발송 완료"
	StatusNegotiating = "협의 중"
	StatusConfirmed   = "계약 확정"
	StatusNotClosed   = "계약 미체결"
	StatusCompleted   = "계약 완료"
)

// QuoteStatuses lists every state in workflow order. 계약 확정 and
// 계약 미체결 are alternative branches out of 협의 중; 계약 완료 follows
// 계약 확정 only. 계약 미체결 and 계약 완료 are terminal.
var QuoteStatuses = []string{
	StatusReceived,
	StatusSent,
	StatusNegotiating,
	StatusConfirmed,
	StatusNotClosed,
	StatusCompleted,
}

// statusAliases maps the unspaced label variants that exist in older
// records ("발송완료") onto the canonical spaced forms.
var statusAliases = map[string]string{
	"접수":    StatusReceived,
	"발송완료":  StatusSent,
	"협의중":   StatusNegotiating,
	"계약확정":  StatusConfirmed,
	"계약미체결": StatusNotClosed,
	"계약완료":  StatusCompleted,
}

// NormalizeStatus resolves a stored status value, tolerating the unspaced
// variants. Returns false for values outside the known set.
func NormalizeStatus(s string) (string, bool) {
	canonical, ok := statusAliases[strings.ReplaceAll(strings.TrimSpace(s), " ", "")]
	return canonical, ok
}

// IsTerminalStatus reports whether no further transition is offered from s.
func IsTerminalStatus(s string) bool {
	canonical, ok := NormalizeStatus(s)
	return ok && (canonical == StatusNotClosed || canonical == StatusCompleted)
}

// linearRank gives the position of the shared linear prefix of the
// workflow (접수 → 발송 완료 → 협의 중). Branch states rank above it.
var linearRank = map[string]int{
	StatusReceived:    0,
	StatusSent:        1,
	StatusNegotiating: 2,
	StatusConfirmed:   3,
	StatusNotClosed:   3,
	StatusCompleted:   4,
}

// StatusProgress is the read-only projection of a quote's progress graph:
// for each state, whether it has been reached and whether it is current.
type StatusProgress struct {
	Status  string `json:"status"`
	Date    string `json:"date,omitempty"`
	Active  bool   `json:"active"`
	Current bool   `json:"current"`
}

// ProgressSteps walks the workflow and marks the reached steps for the
// given current status and history. Branch rule: 계약 확정 and 계약 미체결
// never both appear active unless the history was manually edited to
// contain both; the current status wins the branch.
func ProgressSteps(status string, history StatusHistory) []StatusProgress {
	current, ok := NormalizeStatus(status)
	if !ok {
		current = StatusReceived
	}
	currentRank := linearRank[current]

	steps := make([]StatusProgress, 0, len(QuoteStatuses))
	for _, s := range QuoteStatuses {
		active := false
		switch s {
		case StatusConfirmed:
			// Reached when current, passed through to 계약 완료, or recorded.
			_, hasHist := history.Get(StatusConfirmed)
			active = current == StatusConfirmed || current == StatusCompleted || hasHist
			if current == StatusNotClosed {
				active = false
			}
		case StatusNotClosed:
			active = current == StatusNotClosed
		case StatusCompleted:
			active = current == StatusCompleted
		default:
			active = linearRank[s] <= currentRank
			if current == StatusNotClosed && s == StatusNegotiating {
				active = true
			}
		}
		date, _ := history.Get(s)
		steps = append(steps, StatusProgress{
			Status:  s,
			Date:    date,
			Active:  active,
			Current: s == current,
		})
	}
	return steps
}
