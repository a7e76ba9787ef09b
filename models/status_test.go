package models

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"canonical received", "접수", StatusReceived, true},
		{"canonical sent", "발송 완료", StatusSent, true},
		{"unspaced sent", "발송완료", StatusSent, true},
		{"canonical negotiating", "협의 중", StatusNegotiating, true},
		{"unspaced negotiating", "협의중", StatusNegotiating, true},
		{"canonical confirmed", "계약 확정", StatusConfirmed, true},
		{"unspaced confirmed", "계약확정", StatusConfirmed, true},
		{"canonical not closed", "계약 미체결", StatusNotClosed, true},
		{"canonical completed", "계약 완료", StatusCompleted, true},
		{"unspaced completed", "계약완료", StatusCompleted, true},
		{"surrounding whitespace", "  발송 완료  ", StatusSent, true},
		{"unknown value", "보류", "", false},
		{"empty value", "", "", false},
		{"english value", "sent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("NormalizeStatus(%q) = (%q, %v), expected (%q, %v)",
					tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusReceived, false},
		{StatusSent, false},
		{StatusNegotiating, false},
		{StatusConfirmed, false},
		{StatusNotClosed, true},
		{StatusCompleted, true},
		{"계약완료", true},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := IsTerminalStatus(tt.status); got != tt.expected {
			t.Errorf("IsTerminalStatus(%q) = %v, expected %v", tt.status, got, tt.expected)
		}
	}
}

func stepByStatus(t *testing.T, steps []StatusProgress, status string) StatusProgress {
	t.Helper()
	for _, s := range steps {
		if s.Status == status {
			return s
		}
	}
	t.Fatalf("no step for status %q", status)
	return StatusProgress{}
}

func TestProgressStepsLinear(t *testing.T) {
	history := StatusHistory{
		StatusReceived:    "2025-03-10T00:00:00.000Z",
		StatusSent:        "2025-03-15T00:00:00.000Z",
		StatusNegotiating: "2025-03-20T00:00:00.000Z",
	}
	steps := ProgressSteps(StatusNegotiating, history)

	if len(steps) != len(QuoteStatuses) {
		t.Fatalf("expected %d steps, got %d", len(QuoteStatuses), len(steps))
	}
	for _, status := range []string{StatusReceived, StatusSent, StatusNegotiating} {
		if !stepByStatus(t, steps, status).Active {
			t.Errorf("expected %q active", status)
		}
	}
	for _, status := range []string{StatusConfirmed, StatusNotClosed, StatusCompleted} {
		if stepByStatus(t, steps, status).Active {
			t.Errorf("expected %q inactive", status)
		}
	}
	if !stepByStatus(t, steps, StatusNegotiating).Current {
		t.Error("expected 협의 중 to be current")
	}
}

func TestProgressStepsNotClosedBranch(t *testing.T) {
	history := StatusHistory{
		StatusReceived:    "2025-03-10T00:00:00.000Z",
		StatusSent:        "2025-03-15T00:00:00.000Z",
		StatusNegotiating: "2025-03-20T00:00:00.000Z",
		StatusNotClosed:   "2025-03-25T00:00:00.000Z",
	}
	steps := ProgressSteps(StatusNotClosed, history)

	if stepByStatus(t, steps, StatusConfirmed).Active {
		t.Error("계약 확정 must not be active on the 계약 미체결 branch")
	}
	if !stepByStatus(t, steps, StatusNotClosed).Active {
		t.Error("expected 계약 미체결 active")
	}
	if stepByStatus(t, steps, StatusCompleted).Active {
		t.Error("계약 완료 must not be active when the contract did not close")
	}
}

func TestProgressStepsCompleted(t *testing.T) {
	history := StatusHistory{
		StatusReceived:  "2025-04-05T00:00:00.000Z",
		StatusSent:      "2025-04-10T00:00:00.000Z",
		StatusConfirmed: "2025-04-20T00:00:00.000Z",
		StatusCompleted: "2025-04-25T00:00:00.000Z",
	}
	steps := ProgressSteps(StatusCompleted, history)

	for _, status := range []string{StatusReceived, StatusSent, StatusConfirmed, StatusCompleted} {
		if !stepByStatus(t, steps, status).Active {
			t.Errorf("expected %q active", status)
		}
	}
	if stepByStatus(t, steps, StatusNotClosed).Active {
		t.Error("계약 미체결 must not be active on the completed branch")
	}
	if got := stepByStatus(t, steps, StatusCompleted).Date; got != "2025-04-25T00:00:00.000Z" {
		t.Errorf("completed step date = %q", got)
	}
}

func TestProgressStepsUnknownStatusDefaultsToReceived(t *testing.T) {
	steps := ProgressSteps("garbage", nil)
	if !stepByStatus(t, steps, StatusReceived).Current {
		t.Error("unknown status should fall back to 접수 as current")
	}
}
