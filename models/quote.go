package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// statusTimestampLayout is the wire format for status_history entries,
// UTC midnight of the effective calendar date.
const statusTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// StatusTimestamp renders the effective date of a status change as the
// stored history value (UTC midnight).
func StatusTimestamp(d time.Time) string {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		Format(statusTimestampLayout)
}

// StatusHistory maps a lifecycle state to the timestamp at which the
// quote entered it. Stored as JSONB. Keys accumulate as the quote
// advances; entries are overwritten on manual date edits, never removed.
type StatusHistory map[string]string

// Get looks up the entry for a state, tolerating records that stored the
// unspaced label variant as the key.
func (h StatusHistory) Get(status string) (string, bool) {
	if h == nil {
		return "", false
	}
	if v, ok := h[status]; ok && v != "" {
		return v, true
	}
	unspaced := strings.ReplaceAll(status, " ", "")
	if v, ok := h[unspaced]; ok && v != "" {
		return v, true
	}
	return "", false
}

// Scan implements sql.Scanner for StatusHistory.
func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = StatusHistory{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("StatusHistory.Scan: unsupported type %T", value)
	}
	return json.Unmarshal(bytes, h)
}

// Value implements driver.Valuer for StatusHistory.
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(StatusHistory{})
	}
	return json.Marshal(h)
}

// CustomerInfo is the free-form contact block embedded in a quote. No
// uniqueness constraint; it is a snapshot, not a foreign key.
type CustomerInfo struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName,omitempty"`
	Position    string `json:"position,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Scan implements sql.Scanner for CustomerInfo.
func (c *CustomerInfo) Scan(value interface{}) error {
	if value == nil {
		*c = CustomerInfo{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("CustomerInfo.Scan: unsupported type %T", value)
	}
	return json.Unmarshal(bytes, c)
}

// Value implements driver.Valuer for CustomerInfo.
func (c CustomerInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// QuoteItem is one line of a quote. Order is display-relevant. Period is
// free text (contract months, but "별도 협의" happens in practice).
type QuoteItem struct {
	Category string  `json:"category"`
	Detail   string  `json:"detail"`
	Period   string  `json:"period,omitempty"`
	Quantity float64 `json:"quantity"`
	Price    int64   `json:"price"`
	Amount   int64   `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

// UnmarshalJSON accepts the loose representations found in hand-edited
// and migrated records: numeric fields may arrive as strings (with comma
// separators) and period as a number.
func (it *QuoteItem) UnmarshalJSON(b []byte) error {
	var raw struct {
		Category string          `json:"category"`
		Detail   string          `json:"detail"`
		Period   json.RawMessage `json:"period"`
		Quantity json.RawMessage `json:"quantity"`
		Price    json.RawMessage `json:"price"`
		Amount   json.RawMessage `json:"amount"`
		Note     string          `json:"note"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	it.Category = raw.Category
	it.Detail = raw.Detail
	it.Note = raw.Note
	it.Period = flexString(raw.Period)
	it.Quantity = flexNumber(raw.Quantity)
	it.Price = int64(math.Round(flexNumber(raw.Price)))
	it.Amount = int64(math.Round(flexNumber(raw.Amount)))
	return nil
}

func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

func flexNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ItemList is the JSONB-backed ordered item collection of a quote.
type ItemList []QuoteItem

// Scan implements sql.Scanner for ItemList.
func (l *ItemList) Scan(value interface{}) error {
	if value == nil {
		*l = ItemList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("ItemList.Scan: unsupported type %T", value)
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer for ItemList.
func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(ItemList{})
	}
	return json.Marshal(l)
}

// Quote represents one customer estimate with its lifecycle state and
// timestamped audit trail.
type Quote struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuoteTitle string       `gorm:"size:255;not null" json:"quoteTitle"`
	QuoteDate  JSONTime     `gorm:"not null;index" json:"quoteDate"`
	Recipient  string       `gorm:"size:255" json:"recipient,omitempty"`
	Reference  string       `gorm:"size:100" json:"reference,omitempty"`
	Customer   CustomerInfo `gorm:"type:jsonb;default:'{}'" json:"customer"`
	CustomerID *uuid.UUID   `gorm:"type:uuid;index" json:"customerId,omitempty"`
	Purpose    string       `gorm:"size:100;index" json:"purpose,omitempty"`

	Items ItemList `gorm:"type:jsonb;default:'[]'" json:"items"`

	PaymentInfo string `gorm:"size:255" json:"paymentInfo,omitempty"`
	DepositInfo string `gorm:"size:255" json:"depositInfo,omitempty"`

	ManagerName     string `gorm:"size:100;index" json:"managerName"`
	ManagerPosition string `gorm:"size:100" json:"managerPosition,omitempty"`
	ManagerPhone    string `gorm:"size:50" json:"managerPhone,omitempty"`
	ManagerEmail    string `gorm:"size:255" json:"managerEmail,omitempty"`

	Validity     string `gorm:"size:100" json:"validity,omitempty"`
	Product      string `gorm:"size:255" json:"product,omitempty"`
	LicenseCount int    `gorm:"default:0" json:"licenseCount,omitempty"`
	Memo         string `gorm:"type:text" json:"memo,omitempty"`

	IsRequote bool `gorm:"default:false" json:"isRequote"`
	IsTemp    bool `gorm:"default:false" json:"isTemp"`

	Status        string        `gorm:"size:50;not null;default:'접수';index" json:"status"`
	StatusHistory StatusHistory `gorm:"type:jsonb;default:'{}'" json:"statusHistory"`

	// VAT-exclusive sum of item amounts; recomputed on every item edit.
	TotalAmount int64 `gorm:"default:0" json:"totalAmount"`

	CreatedBy string    `gorm:"size:255;index" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// RecomputeTotal recomputes each line amount (quantity × unit price) and
// the VAT-exclusive total.
func (q *Quote) RecomputeTotal() {
	var total int64
	for i := range q.Items {
		q.Items[i].Amount = int64(math.Round(q.Items[i].Quantity * float64(q.Items[i].Price)))
		total += q.Items[i].Amount
	}
	q.TotalAmount = total
}

// TotalWithVAT returns the VAT-inclusive figure (fixed 10% surcharge).
func (q *Quote) TotalWithVAT() int64 {
	return q.TotalAmount + q.TotalAmount/10
}

// Advance moves the quote to target, recording the effective calendar
// date in the status history as UTC midnight.
//
// The write is unconditional: no transition table is enforced, so an
// out-of-order target is accepted. Manual override is always allowed;
// callers are expected to only offer valid next states. History entries
// are overwritten per state, never deleted, which makes Advance
// idempotent for a given (target, date) pair.
func (q *Quote) Advance(target string, effective time.Time) error {
	canonical, ok := NormalizeStatus(target)
	if !ok {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", target)}
	}
	if effective.IsZero() {
		return &ValidationError{Field: "date", Reason: "effective date is required"}
	}

	ts := StatusTimestamp(effective)
	if q.StatusHistory == nil {
		q.StatusHistory = StatusHistory{}
	}
	q.Status = canonical
	q.StatusHistory[canonical] = ts
	if canonical == StatusReceived {
		q.QuoteDate = JSONTime(time.Date(effective.Year(), effective.Month(), effective.Day(), 0, 0, 0, 0, time.UTC))
	}
	q.UpdatedAt = time.Now().UTC()
	return nil
}

// EnsureStatusHistory restores the invariant that the current status has
// a history entry: saving a quote whose history lacks its own status key
// would make dashboard bucketing fall back to createdAt. Seeds the entry
// from the quote's business date; existing entries are never touched.
func (q *Quote) EnsureStatusHistory() {
	if q.StatusHistory == nil {
		q.StatusHistory = StatusHistory{}
	}
	if _, ok := q.StatusHistory.Get(q.Status); ok {
		return
	}
	d := time.Time(q.QuoteDate)
	if d.IsZero() {
		d = time.Now().UTC()
	}
	q.StatusHistory[q.Status] = StatusTimestamp(d)
}

// CurrentStatusDate returns the history entry for the quote's current
// status. The invariant after any Advance is that this entry exists;
// records created before the history column existed may lack it.
func (q *Quote) CurrentStatusDate() (string, bool) {
	canonical, ok := NormalizeStatus(q.Status)
	if !ok {
		return "", false
	}
	return q.StatusHistory.Get(canonical)
}
