package handlers

import (
	"math"
	"strings"
	"time"

	"malgeunsoft.com/launchpad/models"
)

// OwnerFilter scopes dashboard aggregates to one sales representative.
//
// The primary key is the immutable CreatedBy value stamped on a quote at
// creation. Records written before that field existed carry only a
// manager display name, so a legacy heuristic (exact name, email, or
// substring match either direction) can be enabled for them explicitly.
// The zero filter matches every quote.
type OwnerFilter struct {
	OwnerKey    string
	Name        string
	Email       string
	LegacyMatch bool
}

// IsZero reports whether the filter matches all quotes.
func (f OwnerFilter) IsZero() bool {
	return f.OwnerKey == "" && f.Name == "" && f.Email == ""
}

// Matches reports whether the quote belongs to the filtered owner.
func (f OwnerFilter) Matches(q *models.Quote) bool {
	if f.IsZero() {
		return true
	}
	if f.OwnerKey != "" && q.CreatedBy != "" {
		return q.CreatedBy == f.OwnerKey
	}
	name := strings.TrimSuffix(f.Name, "님")
	if name != "" && q.ManagerName != "" {
		if q.ManagerName == f.Name || q.ManagerName == name {
			return true
		}
	}
	if f.Email != "" && (q.CreatedBy == f.Email || q.ManagerEmail == f.Email) {
		return true
	}
	if f.LegacyMatch && name != "" && q.ManagerName != "" {
		return strings.Contains(q.ManagerName, name) || strings.Contains(name, q.ManagerName)
	}
	return false
}

// StatusCount is one row of the status dashboard: how many of the
// owner's quotes sit in a state for the selected month, cumulatively
// through the end of the selected period, and the VAT-exclusive amount
// sum over the cumulative set.
type StatusCount struct {
	Status     string `json:"status"`
	Monthly    int    `json:"monthly"`
	Cumulative int    `json:"cumulative"`
	Amount     int64  `json:"amount"`
}

// StatusCountReport is the response shape of the status-counts endpoint.
type StatusCountReport struct {
	Year   int           `json:"year"`
	Month  int           `json:"month,omitempty"`
	Counts []StatusCount `json:"counts"`
}

// MonthlySeries carries the twelve-month trend chart data for one year:
// quotes sent, contracts completed, and completed contract amounts
// (VAT-exclusive), indexed January through December.
type MonthlySeries struct {
	Year             int       `json:"year"`
	SentCounts       [12]int   `json:"sentCounts"`
	CompletedCounts  [12]int   `json:"completedCounts"`
	CompletedAmounts [12]int64 `json:"completedAmounts"`
}

// Summary feeds the performance panel on the home dashboard.
type Summary struct {
	TotalQuotes            int   `json:"totalQuotes"`
	TotalCompleted         int   `json:"totalCompleted"`
	MonthlyCompleted       int   `json:"monthlyCompleted"`
	TotalCompletedAmount   int64 `json:"totalCompletedAmount"`
	MonthlyCompletedAmount int64 `json:"monthlyCompletedAmount"`
	SuccessRate            int   `json:"successRate"`
	Received               int   `json:"received"`
	Sent                   int   `json:"sent"`
	Negotiating            int   `json:"negotiating"`
}

// DashboardEngine derives dashboard views from the quote collection.
// All methods are total over arbitrary stored data: a quote with a
// missing or unparsable date is left out of the affected bucket rather
// than failing the aggregation.
type DashboardEngine struct{}

// NewDashboardEngine creates a new dashboard engine
func NewDashboardEngine() *DashboardEngine {
	return &DashboardEngine{}
}

// effectiveStatusDate picks the date used to bucket a quote for a given
// state: 접수 uses the quote's business date, every other state uses its
// status-history entry, falling back to createdAt.
func (e *DashboardEngine) effectiveStatusDate(q *models.Quote, status string) (time.Time, bool) {
	if status == models.StatusReceived {
		if d := time.Time(q.QuoteDate); !d.IsZero() {
			return d, true
		}
		if !q.CreatedAt.IsZero() {
			return q.CreatedAt, true
		}
		return time.Time{}, false
	}
	if raw, ok := q.StatusHistory.Get(status); ok {
		if d, err := models.ParseFlexibleTime(raw); err == nil {
			return d, true
		}
	}
	if !q.CreatedAt.IsZero() {
		return q.CreatedAt, true
	}
	return time.Time{}, false
}

// historyDate resolves a status-history entry only, with no fallback.
func (e *DashboardEngine) historyDate(q *models.Quote, status string) (time.Time, bool) {
	raw, ok := q.StatusHistory.Get(status)
	if !ok {
		return time.Time{}, false
	}
	d, err := models.ParseFlexibleTime(raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// bucketStatus maps a quote onto exactly one dashboard bucket: its
// current status, defaulting to 접수 for unknown values.
func bucketStatus(q *models.Quote) string {
	if canonical, ok := models.NormalizeStatus(q.Status); ok {
		return canonical
	}
	return models.StatusReceived
}

// ComputeStatusCounts aggregates the owner's quotes per lifecycle state
// for the selected period. month == 0 means year-to-date: the monthly
// column stays zero and the cumulative column covers everything dated in
// or before the selected year.
func (e *DashboardEngine) ComputeStatusCounts(quotes []models.Quote, owner OwnerFilter, year, month int) *StatusCountReport {
	report := &StatusCountReport{Year: year, Month: month}
	byStatus := make(map[string]*StatusCount, len(models.QuoteStatuses))
	for _, s := range models.QuoteStatuses {
		sc := &StatusCount{Status: s}
		byStatus[s] = sc
	}

	for i := range quotes {
		q := &quotes[i]
		if !owner.Matches(q) {
			continue
		}
		status := bucketStatus(q)
		sc := byStatus[status]

		d, ok := e.effectiveStatusDate(q, status)
		if !ok {
			continue
		}
		dYear, dMonth := d.Year(), int(d.Month())

		inRange := false
		inMonth := false
		if month > 0 {
			inMonth = dYear == year && dMonth == month
			inRange = dYear < year || (dYear == year && dMonth <= month)
		} else {
			inRange = dYear <= year
		}

		if inRange {
			sc.Cumulative++
			sc.Amount += q.TotalAmount
			if inMonth {
				sc.Monthly++
			}
		}
	}

	for _, s := range models.QuoteStatuses {
		report.Counts = append(report.Counts, *byStatus[s])
	}
	return report
}

// ComputeMonthlySeries builds the yearly trend chart: per calendar
// month, how many quotes were sent, how many contracts completed, and
// the completed amount sum. A quote contributes only when its current
// status is the charted state and its history records a date for it;
// there is no fallback month.
func (e *DashboardEngine) ComputeMonthlySeries(quotes []models.Quote, owner OwnerFilter, year int) *MonthlySeries {
	series := &MonthlySeries{Year: year}

	for i := range quotes {
		q := &quotes[i]
		if !owner.Matches(q) {
			continue
		}
		switch bucketStatus(q) {
		case models.StatusSent:
			if d, ok := e.historyDate(q, models.StatusSent); ok && d.Year() == year {
				series.SentCounts[int(d.Month())-1]++
			}
		case models.StatusCompleted:
			if d, ok := e.historyDate(q, models.StatusCompleted); ok && d.Year() == year {
				m := int(d.Month()) - 1
				series.CompletedCounts[m]++
				series.CompletedAmounts[m] += q.TotalAmount
			}
		}
	}
	return series
}

// ComputeSummary derives the performance panel numbers as of now:
// completed counts and amounts (this month and overall), the contract
// success rate, and the in-progress counts by current status.
func (e *DashboardEngine) ComputeSummary(quotes []models.Quote, owner OwnerFilter, now time.Time) *Summary {
	summary := &Summary{}
	year, month := now.Year(), int(now.Month())

	for i := range quotes {
		q := &quotes[i]
		if !owner.Matches(q) {
			continue
		}
		summary.TotalQuotes++

		switch bucketStatus(q) {
		case models.StatusCompleted:
			summary.TotalCompleted++
			summary.TotalCompletedAmount += q.TotalAmount
			// Legacy records may lack both the history entry and updatedAt.
			d, ok := e.historyDate(q, models.StatusCompleted)
			if !ok {
				d, ok = q.UpdatedAt, !q.UpdatedAt.IsZero()
			}
			if !ok {
				d, ok = q.CreatedAt, !q.CreatedAt.IsZero()
			}
			if ok && d.Year() == year && int(d.Month()) == month {
				summary.MonthlyCompleted++
				summary.MonthlyCompletedAmount += q.TotalAmount
			}
		case models.StatusReceived:
			summary.Received++
		case models.StatusSent:
			summary.Sent++
		case models.StatusNegotiating:
			summary.Negotiating++
		}
	}

	if summary.TotalQuotes > 0 {
		summary.SuccessRate = int(math.Round(float64(summary.TotalCompleted) / float64(summary.TotalQuotes) * 100))
	}
	return summary
}
