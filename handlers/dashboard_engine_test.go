package handlers

import (
	"testing"
	"time"

	"malgeunsoft.com/launchpad/models"
)

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func completedQuote(t *testing.T, title string, amount int64) models.Quote {
	t.Helper()
	return models.Quote{
		QuoteTitle:  title,
		QuoteDate:   models.JSONTime(testDate(t, "2025-04-05")),
		Status:      models.StatusCompleted,
		TotalAmount: amount,
		CreatedBy:   "sales1@malgeunsoft.com",
		ManagerName: "홍길동",
		CreatedAt:   testDate(t, "2025-04-05"),
		StatusHistory: models.StatusHistory{
			models.StatusReceived:  "2025-04-05T00:00:00.000Z",
			models.StatusSent:      "2025-04-10T00:00:00.000Z",
			models.StatusConfirmed: "2025-04-20T00:00:00.000Z",
			models.StatusCompleted: "2025-04-25T00:00:00.000Z",
		},
	}
}

func countFor(report *StatusCountReport, status string) StatusCount {
	for _, c := range report.Counts {
		if c.Status == status {
			return c
		}
	}
	return StatusCount{}
}

func TestComputeStatusCountsCompletedQuote(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{completedQuote(t, "계약 완료 건", 1000000)}

	report := engine.ComputeStatusCounts(quotes, OwnerFilter{}, 2025, 4)

	completed := countFor(report, models.StatusCompleted)
	if completed.Monthly != 1 {
		t.Errorf("April monthly completed = %d, expected 1", completed.Monthly)
	}
	if completed.Cumulative != 1 {
		t.Errorf("cumulative completed = %d, expected 1", completed.Cumulative)
	}
	if completed.Amount != 1000000 {
		t.Errorf("completed amount = %d, expected 1000000", completed.Amount)
	}

	// The quote is counted once, under its current status only.
	for _, status := range []string{models.StatusReceived, models.StatusSent, models.StatusNegotiating, models.StatusConfirmed} {
		if c := countFor(report, status); c.Cumulative != 0 {
			t.Errorf("%q cumulative = %d, expected 0", status, c.Cumulative)
		}
	}
}

func TestComputeStatusCountsNegotiatingNeverInContractBuckets(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{{
		QuoteTitle: "협의 중 건",
		QuoteDate:  models.JSONTime(testDate(t, "2025-03-10")),
		Status:     models.StatusNegotiating,
		CreatedAt:  testDate(t, "2025-03-10"),
		StatusHistory: models.StatusHistory{
			models.StatusReceived:    "2025-03-10T00:00:00.000Z",
			models.StatusSent:        "2025-03-15T00:00:00.000Z",
			models.StatusNegotiating: "2025-03-20T00:00:00.000Z",
		},
	}}

	report := engine.ComputeStatusCounts(quotes, OwnerFilter{}, 2025, 3)

	if c := countFor(report, models.StatusNegotiating); c.Monthly != 1 || c.Cumulative != 1 {
		t.Errorf("협의 중 = %+v, expected monthly 1 cumulative 1", c)
	}
	if c := countFor(report, models.StatusConfirmed); c.Cumulative != 0 {
		t.Errorf("계약 확정 cumulative = %d, expected 0", c.Cumulative)
	}
	if c := countFor(report, models.StatusCompleted); c.Cumulative != 0 {
		t.Errorf("계약 완료 cumulative = %d, expected 0", c.Cumulative)
	}
}

func TestComputeStatusCountsCumulativeRange(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{
		completedQuote(t, "april", 1000000),
		{
			QuoteTitle: "june",
			QuoteDate:  models.JSONTime(testDate(t, "2025-06-01")),
			Status:     models.StatusCompleted,
			CreatedAt:  testDate(t, "2025-06-01"),
			StatusHistory: models.StatusHistory{
				models.StatusCompleted: "2025-06-10T00:00:00.000Z",
			},
			TotalAmount: 500000,
		},
	}

	// As of May the June completion is out of range.
	report := engine.ComputeStatusCounts(quotes, OwnerFilter{}, 2025, 5)
	completed := countFor(report, models.StatusCompleted)
	if completed.Cumulative != 1 {
		t.Errorf("May cumulative = %d, expected 1", completed.Cumulative)
	}
	if completed.Monthly != 0 {
		t.Errorf("May monthly = %d, expected 0", completed.Monthly)
	}

	// Year-to-date view includes both.
	report = engine.ComputeStatusCounts(quotes, OwnerFilter{}, 2025, 0)
	completed = countFor(report, models.StatusCompleted)
	if completed.Cumulative != 2 {
		t.Errorf("yearly cumulative = %d, expected 2", completed.Cumulative)
	}
	if completed.Amount != 1500000 {
		t.Errorf("yearly amount = %d, expected 1500000", completed.Amount)
	}
}

func TestComputeStatusCountsEachQuoteInOneBucket(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{
		completedQuote(t, "a", 100),
		{QuoteTitle: "b", QuoteDate: models.JSONTime(testDate(t, "2025-02-01")), Status: models.StatusReceived, CreatedAt: testDate(t, "2025-02-01")},
		{QuoteTitle: "c", QuoteDate: models.JSONTime(testDate(t, "2025-03-01")), Status: models.StatusSent, CreatedAt: testDate(t, "2025-03-01"),
			StatusHistory: models.StatusHistory{models.StatusSent: "2025-03-05T00:00:00.000Z"}},
	}

	report := engine.ComputeStatusCounts(quotes, OwnerFilter{}, 2025, 0)
	total := 0
	for _, c := range report.Counts {
		total += c.Cumulative
	}
	if total != len(quotes) {
		t.Errorf("cumulative sum %d != quote count %d", total, len(quotes))
	}
}

func TestComputeStatusCountsUnparsableDateSkipsQuote(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{{
		QuoteTitle:    "corrupt",
		Status:        models.StatusSent,
		StatusHistory: models.StatusHistory{models.StatusSent: "not-a-date"},
		CreatedAt:     testDate(t, "2025-05-01"),
	}}

	// The engine falls back to createdAt instead of failing.
	report := engine.ComputeStatusCounts(quotes, OwnerFilter{}, 2025, 5)
	if c := countFor(report, models.StatusSent); c.Cumulative != 1 {
		t.Errorf("sent cumulative = %d, expected createdAt fallback to count it", c.Cumulative)
	}
}

func TestComputeMonthlySeries(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{
		completedQuote(t, "completed april", 1000000),
		{
			QuoteTitle: "sent march",
			Status:     models.StatusSent,
			CreatedAt:  testDate(t, "2025-03-01"),
			StatusHistory: models.StatusHistory{
				models.StatusReceived: "2025-03-01T00:00:00.000Z",
				models.StatusSent:     "2025-03-05T00:00:00.000Z",
			},
		},
		{
			// Was sent in March but has since moved on: the sent series
			// only charts quotes currently in 발송 완료.
			QuoteTitle: "negotiating now",
			Status:     models.StatusNegotiating,
			CreatedAt:  testDate(t, "2025-03-02"),
			StatusHistory: models.StatusHistory{
				models.StatusSent:        "2025-03-10T00:00:00.000Z",
				models.StatusNegotiating: "2025-03-20T00:00:00.000Z",
			},
		},
	}

	series := engine.ComputeMonthlySeries(quotes, OwnerFilter{}, 2025)

	if series.SentCounts[2] != 1 {
		t.Errorf("March sent = %d, expected 1", series.SentCounts[2])
	}
	if series.CompletedCounts[3] != 1 {
		t.Errorf("April completed = %d, expected 1", series.CompletedCounts[3])
	}
	if series.CompletedAmounts[3] != 1000000 {
		t.Errorf("April completed amount = %d, expected 1000000", series.CompletedAmounts[3])
	}
	for m, n := range series.SentCounts {
		if m != 2 && n != 0 {
			t.Errorf("month %d sent = %d, expected 0", m+1, n)
		}
	}
}

func TestComputeMonthlySeriesOtherYearExcluded(t *testing.T) {
	engine := NewDashboardEngine()
	quotes := []models.Quote{completedQuote(t, "april 2025", 1000000)}

	series := engine.ComputeMonthlySeries(quotes, OwnerFilter{}, 2024)
	for m, n := range series.CompletedCounts {
		if n != 0 {
			t.Errorf("2024 month %d completed = %d, expected 0", m+1, n)
		}
	}
}

func TestOwnerFilterMatches(t *testing.T) {
	quote := models.Quote{
		CreatedBy:    "sales1@malgeunsoft.com",
		ManagerName:  "홍길동",
		ManagerEmail: "sales1@malgeunsoft.com",
	}
	legacy := models.Quote{ManagerName: "홍길동"}

	tests := []struct {
		name     string
		filter   OwnerFilter
		quote    *models.Quote
		expected bool
	}{
		{"zero filter matches all", OwnerFilter{}, &quote, true},
		{"owner key match", OwnerFilter{OwnerKey: "sales1@malgeunsoft.com"}, &quote, true},
		{"owner key mismatch", OwnerFilter{OwnerKey: "sales2@malgeunsoft.com"}, &quote, false},
		{"owner key outranks name", OwnerFilter{OwnerKey: "sales2@malgeunsoft.com", Name: "홍길동"}, &quote, false},
		{"exact name on legacy record", OwnerFilter{Name: "홍길동"}, &legacy, true},
		{"honorific stripped", OwnerFilter{Name: "홍길동님"}, &legacy, true},
		{"email against manager email", OwnerFilter{Email: "sales1@malgeunsoft.com"}, &quote, true},
		{"substring needs legacy flag", OwnerFilter{Name: "홍길"}, &legacy, false},
		{"substring with legacy flag", OwnerFilter{Name: "홍길", LegacyMatch: true}, &legacy, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.quote); got != tt.expected {
				t.Errorf("Matches() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestComputeSummaryLegacyCompletedFallsBackToCreatedAt(t *testing.T) {
	engine := NewDashboardEngine()
	now := testDate(t, "2025-04-30")
	quotes := []models.Quote{{
		QuoteTitle: "legacy completed",
		Status:     models.StatusCompleted,
		CreatedAt:  testDate(t, "2025-04-12"),
		// No history entry, no updatedAt.
		TotalAmount: 700000,
	}}

	summary := engine.ComputeSummary(quotes, OwnerFilter{}, now)

	if summary.MonthlyCompleted != 1 {
		t.Errorf("monthlyCompleted = %d, expected createdAt fallback to count it", summary.MonthlyCompleted)
	}
	if summary.MonthlyCompletedAmount != 700000 {
		t.Errorf("monthlyCompletedAmount = %d", summary.MonthlyCompletedAmount)
	}
}

func TestComputeStatusCountsOwnerScoped(t *testing.T) {
	engine := NewDashboardEngine()
	mine := completedQuote(t, "mine", 1000000)
	theirs := completedQuote(t, "theirs", 2000000)
	theirs.CreatedBy = "sales2@malgeunsoft.com"

	report := engine.ComputeStatusCounts([]models.Quote{mine, theirs},
		OwnerFilter{OwnerKey: "sales1@malgeunsoft.com"}, 2025, 4)

	completed := countFor(report, models.StatusCompleted)
	if completed.Cumulative != 1 || completed.Amount != 1000000 {
		t.Errorf("owner-scoped completed = %+v", completed)
	}
}

func TestComputeSummary(t *testing.T) {
	engine := NewDashboardEngine()
	now := testDate(t, "2025-04-30")
	quotes := []models.Quote{
		completedQuote(t, "completed this month", 1000000),
		{QuoteTitle: "received", Status: models.StatusReceived, CreatedAt: testDate(t, "2025-04-01")},
		{QuoteTitle: "sent", Status: models.StatusSent, CreatedAt: testDate(t, "2025-04-02"),
			StatusHistory: models.StatusHistory{models.StatusSent: "2025-04-03T00:00:00.000Z"}},
		{QuoteTitle: "negotiating", Status: models.StatusNegotiating, CreatedAt: testDate(t, "2025-04-03"),
			StatusHistory: models.StatusHistory{models.StatusNegotiating: "2025-04-04T00:00:00.000Z"}},
	}

	summary := engine.ComputeSummary(quotes, OwnerFilter{}, now)

	if summary.TotalQuotes != 4 {
		t.Errorf("totalQuotes = %d", summary.TotalQuotes)
	}
	if summary.TotalCompleted != 1 || summary.MonthlyCompleted != 1 {
		t.Errorf("completed = %d monthly = %d", summary.TotalCompleted, summary.MonthlyCompleted)
	}
	if summary.TotalCompletedAmount != 1000000 || summary.MonthlyCompletedAmount != 1000000 {
		t.Errorf("amounts = %d / %d", summary.TotalCompletedAmount, summary.MonthlyCompletedAmount)
	}
	if summary.SuccessRate != 25 {
		t.Errorf("successRate = %d, expected 25", summary.SuccessRate)
	}
	if summary.Received != 1 || summary.Sent != 1 || summary.Negotiating != 1 {
		t.Errorf("in-progress counts = %d/%d/%d", summary.Received, summary.Sent, summary.Negotiating)
	}
}
