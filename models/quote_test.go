package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestStatusTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"plain date", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), "2025-04-25T00:00:00.000Z"},
		{"time of day is dropped", time.Date(2025, 4, 25, 18, 42, 9, 0, time.UTC), "2025-04-25T00:00:00.000Z"},
		{"january", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "2025-01-15T00:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusTimestamp(tt.input); got != tt.expected {
				t.Errorf("StatusTimestamp(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAdvanceRecordsHistory(t *testing.T) {
	q := &Quote{Status: StatusReceived}
	if err := q.Advance(StatusSent, mustDate(t, "2025-02-25")); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	if q.Status != StatusSent {
		t.Errorf("status = %q, expected %q", q.Status, StatusSent)
	}
	got, ok := q.StatusHistory.Get(StatusSent)
	if !ok || got != "2025-02-25T00:00:00.000Z" {
		t.Errorf("history entry = (%q, %v)", got, ok)
	}
}

func TestAdvanceNormalizesUnspacedTarget(t *testing.T) {
	q := &Quote{Status: StatusReceived}
	if err := q.Advance("발송완료", mustDate(t, "2025-02-25")); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if q.Status != StatusSent {
		t.Errorf("status = %q, expected canonical %q", q.Status, StatusSent)
	}
	if _, ok := q.StatusHistory[StatusSent]; !ok {
		t.Error("history must be keyed by the canonical label")
	}
}

func TestAdvanceToReceivedMovesQuoteDate(t *testing.T) {
	q := &Quote{
		Status:    StatusSent,
		QuoteDate: JSONTime(mustDate(t, "2025-01-15")),
		StatusHistory: StatusHistory{
			StatusReceived: "2025-01-15T00:00:00.000Z",
			StatusSent:     "2025-01-20T00:00:00.000Z",
		},
	}
	if err := q.Advance(StatusReceived, mustDate(t, "2025-03-01")); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	if got := time.Time(q.QuoteDate).Format("2006-01-02"); got != "2025-03-01" {
		t.Errorf("quoteDate = %s, expected 2025-03-01", got)
	}
	if got, _ := q.StatusHistory.Get(StatusReceived); got != "2025-03-01T00:00:00.000Z" {
		t.Errorf("접수 history = %q", got)
	}
}

func TestAdvanceNeverRemovesHistoryKeys(t *testing.T) {
	q := &Quote{
		Status: StatusNegotiating,
		StatusHistory: StatusHistory{
			StatusReceived:    "2025-03-10T00:00:00.000Z",
			StatusSent:        "2025-03-15T00:00:00.000Z",
			StatusNegotiating: "2025-03-20T00:00:00.000Z",
		},
	}
	before := len(q.StatusHistory)

	// Moving backwards keeps the later entries.
	if err := q.Advance(StatusSent, mustDate(t, "2025-03-18")); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if len(q.StatusHistory) != before {
		t.Errorf("history size changed from %d to %d", before, len(q.StatusHistory))
	}
	if _, ok := q.StatusHistory.Get(StatusNegotiating); !ok {
		t.Error("협의 중 entry must survive a backwards move")
	}
	if got, _ := q.StatusHistory.Get(StatusSent); got != "2025-03-18T00:00:00.000Z" {
		t.Errorf("발송 완료 entry = %q, expected overwrite", got)
	}
}

func TestAdvanceIdempotent(t *testing.T) {
	q := &Quote{Status: StatusReceived}
	date := mustDate(t, "2025-04-20")
	if err := q.Advance(StatusConfirmed, date); err != nil {
		t.Fatalf("first Advance failed: %v", err)
	}
	first := q.StatusHistory[StatusConfirmed]

	if err := q.Advance(StatusConfirmed, date); err != nil {
		t.Fatalf("second Advance failed: %v", err)
	}
	if q.StatusHistory[StatusConfirmed] != first {
		t.Error("repeating the same advance must not change the history entry")
	}
	if q.Status != StatusConfirmed {
		t.Errorf("status = %q", q.Status)
	}
}

func TestAdvanceValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		date   time.Time
	}{
		{"unknown status", "보류", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"empty status", "", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"zero date", StatusSent, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Quote{Status: StatusReceived}
			err := q.Advance(tt.target, tt.date)
			if err == nil {
				t.Fatal("expected an error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %T", err)
			}
			if q.Status != StatusReceived {
				t.Errorf("status must be unchanged on error, got %q", q.Status)
			}
		})
	}
}

func TestEnsureStatusHistorySeedsMissingEntry(t *testing.T) {
	// A full edit can change the status without touching the history;
	// the saved quote must still carry an entry for its own status.
	q := &Quote{
		QuoteTitle: "t",
		QuoteDate:  JSONTime(mustDate(t, "2025-01-15")),
		Status:     StatusSent,
		StatusHistory: StatusHistory{
			StatusReceived: "2025-01-15T00:00:00.000Z",
		},
	}
	q.EnsureStatusHistory()

	got, ok := q.StatusHistory.Get(StatusSent)
	if !ok || got != "2025-01-15T00:00:00.000Z" {
		t.Errorf("발송 완료 entry = (%q, %v), expected seed from quote date", got, ok)
	}
	if _, ok := q.StatusHistory.Get(StatusReceived); !ok {
		t.Error("existing 접수 entry must survive")
	}
}

func TestEnsureStatusHistoryKeepsExistingEntry(t *testing.T) {
	q := &Quote{
		QuoteDate: JSONTime(mustDate(t, "2025-03-01")),
		Status:    StatusSent,
		StatusHistory: StatusHistory{
			StatusSent: "2025-02-25T00:00:00.000Z",
		},
	}
	q.EnsureStatusHistory()

	if got, _ := q.StatusHistory.Get(StatusSent); got != "2025-02-25T00:00:00.000Z" {
		t.Errorf("existing entry overwritten: %q", got)
	}
}

func TestEnsureStatusHistoryNilMap(t *testing.T) {
	q := &Quote{
		QuoteDate: JSONTime(mustDate(t, "2025-01-15")),
		Status:    StatusReceived,
	}
	q.EnsureStatusHistory()

	if got, ok := q.StatusHistory.Get(StatusReceived); !ok || got != "2025-01-15T00:00:00.000Z" {
		t.Errorf("접수 entry = (%q, %v)", got, ok)
	}
}

func TestStatusHistoryGetUnspacedVariant(t *testing.T) {
	h := StatusHistory{"발송완료": "2025-02-25T00:00:00.000Z"}
	got, ok := h.Get(StatusSent)
	if !ok || got != "2025-02-25T00:00:00.000Z" {
		t.Errorf("Get(%q) = (%q, %v)", StatusSent, got, ok)
	}
}

func TestRecomputeTotal(t *testing.T) {
	q := &Quote{
		Items: ItemList{
			{Quantity: 10, Price: 100000},
			{Quantity: 5, Price: 50000},
			{Quantity: 1.5, Price: 1000},
		},
	}
	q.RecomputeTotal()

	if q.Items[0].Amount != 1000000 {
		t.Errorf("item 0 amount = %d", q.Items[0].Amount)
	}
	if q.Items[2].Amount != 1500 {
		t.Errorf("fractional quantity amount = %d", q.Items[2].Amount)
	}
	if q.TotalAmount != 1251500 {
		t.Errorf("totalAmount = %d, expected 1251500", q.TotalAmount)
	}
}

func TestTotalWithVAT(t *testing.T) {
	tests := []struct {
		total    int64
		expected int64
	}{
		{1000000, 1100000},
		{1250000, 1375000},
		{0, 0},
	}

	for _, tt := range tests {
		q := &Quote{TotalAmount: tt.total}
		if got := q.TotalWithVAT(); got != tt.expected {
			t.Errorf("TotalWithVAT() with total %d = %d, expected %d", tt.total, got, tt.expected)
		}
	}
}

func TestQuoteItemUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected QuoteItem
	}{
		{
			"numeric fields",
			`{"category":"기본","detail":"기본 라이선스","period":"12","quantity":10,"price":100000,"amount":1000000}`,
			QuoteItem{Category: "기본", Detail: "기본 라이선스", Period: "12", Quantity: 10, Price: 100000, Amount: 1000000},
		},
		{
			"string numbers with commas",
			`{"category":"추가","detail":"추가 모듈","quantity":"5","price":"50,000","amount":"250,000"}`,
			QuoteItem{Category: "추가", Detail: "추가 모듈", Quantity: 5, Price: 50000, Amount: 250000},
		},
		{
			"numeric period",
			`{"category":"서비스","detail":"유지보수","period":12,"quantity":1,"price":200000,"amount":200000}`,
			QuoteItem{Category: "서비스", Detail: "유지보수", Period: "12", Quantity: 1, Price: 200000, Amount: 200000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got QuoteItem
			if err := json.Unmarshal([]byte(tt.payload), &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"2025-04-25T00:00:00.000Z", "2025-04-25", false},
		{"2025-05-16T15:32:25Z", "2025-05-16", false},
		{"2025-05-16T15:32:25.123456", "2025-05-16", false},
		{"2025-01-15", "2025-01-15", false},
		{"not-a-date", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFlexibleTime(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFlexibleTime(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFlexibleTime(%q) failed: %v", tt.input, err)
			continue
		}
		if got.Format("2006-01-02") != tt.expected {
			t.Errorf("ParseFlexibleTime(%q) = %s, expected %s", tt.input, got.Format("2006-01-02"), tt.expected)
		}
	}
}
