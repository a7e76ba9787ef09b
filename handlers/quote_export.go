package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"malgeunsoft.com/launchpad/config"
	"malgeunsoft.com/launchpad/models"
)

// ExportHandler renders quotes as downloadable files: the status report
// as Excel/CSV and a single quote as a PDF document.
type ExportHandler struct {
	db *gorm.DB
}

// NewExportHandler creates a new export handler
func NewExportHandler() *ExportHandler {
	return &ExportHandler{db: config.DB}
}

var exportHeaders = []string{
	"견적서명", "고객사", "사용목적", "담당자", "상태", "견적일자", "계약 총액", "총액(VAT 포함)",
}

func (h *ExportHandler) exportRows(r *http.Request) ([]models.Quote, error) {
	var quotes []models.Quote
	query := h.db.Model(&models.Quote{}).Where("is_temp = ?", false)
	if createdBy := r.URL.Query().Get("created_by"); createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if canonical, ok := models.NormalizeStatus(status); ok {
			status = canonical
		}
		query = query.Where("status = ?", status)
	}
	err := query.Order("quote_date DESC, created_at DESC").Find(&quotes).Error
	return quotes, err
}

// ExportQuotesToExcel exports the quote status report as an .xlsx file.
func (h *ExportHandler) ExportQuotesToExcel(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.exportRows(r)
	if err != nil {
		http.Error(w, "Failed to fetch quotes", http.StatusInternalServerError)
		return
	}

	f, err := createQuoteWorkbook(quotes)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("quotes_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportQuotesToCSV exports the quote status report as CSV.
func (h *ExportHandler) ExportQuotesToCSV(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.exportRows(r)
	if err != nil {
		http.Error(w, "Failed to fetch quotes", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write(exportHeaders)
	for i := range quotes {
		writer.Write(quoteExportRow(&quotes[i]))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("quotes_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func quoteExportRow(q *models.Quote) []string {
	return []string{
		q.QuoteTitle,
		q.Customer.CompanyName,
		q.Purpose,
		q.ManagerName,
		q.Status,
		time.Time(q.QuoteDate).Format("2006-01-02"),
		strconv.FormatInt(q.TotalAmount, 10),
		strconv.FormatInt(q.TotalWithVAT(), 10),
	}
}

// createQuoteWorkbook builds the status report workbook: a title row, a
// styled header row, one row per quote, and a totals line.
func createQuoteWorkbook(quotes []models.Quote) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "견적 현황"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", "견적 진행 현황")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	var totalAmount int64
	for rowIdx := range quotes {
		q := &quotes[rowIdx]
		for colIdx, value := range quoteExportRow(q) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			if colIdx >= 6 {
				// Amount columns as numbers so spreadsheet sums work.
				n, _ := strconv.ParseInt(value, 10, 64)
				f.SetCellValue(sheetName, cell, n)
			} else {
				f.SetCellValue(sheetName, cell, value)
			}
		}
		totalAmount += q.TotalAmount
	}

	summaryRow := len(quotes) + 6
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
	})
	keyCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow)
	f.SetCellValue(sheetName, keyCell, "합계 (VAT 제외)")
	f.SetCellValue(sheetName, valueCell, totalAmount)
	f.SetCellStyle(sheetName, keyCell, valueCell, summaryStyle)

	f.DeleteSheet("Sheet1")
	return f, nil
}

// ExportQuoteToPDF renders a single quote as a PDF document. Korean text
// needs a UTF-8 font; PDF_FONT_PATH / PDF_FONT_BOLD_PATH point at the
// TTF files to embed.
func (h *ExportHandler) ExportQuoteToPDF(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", vars["id"]).Error; err != nil {
		http.Error(w, "Quote not found", http.StatusNotFound)
		return
	}

	data, err := generateQuotePDF(&quote)
	if err != nil {
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("quote_%s.pdf", sanitizeExportName(quote.QuoteTitle))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func generateQuotePDF(q *models.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(q.QuoteTitle, true)

	regularFont := os.Getenv("PDF_FONT_PATH")
	if regularFont == "" {
		regularFont = "assets/fonts/NotoSansKR-Regular.ttf"
	}
	boldFont := os.Getenv("PDF_FONT_BOLD_PATH")
	if boldFont == "" {
		boldFont = "assets/fonts/NotoSansKR-Bold.ttf"
	}
	pdf.AddUTF8Font("Noto", "", regularFont)
	pdf.AddUTF8Font("Noto", "B", boldFont)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	pdf.AddPage()

	pdf.SetFont("Noto", "B", 16)
	pdf.Cell(0, 10, "견 적 서")
	pdf.Ln(10)

	pdf.SetFont("Noto", "", 11)
	pdf.Cell(0, 6, q.QuoteTitle)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("견적일자: %s", time.Time(q.QuoteDate).Format("2006-01-02")))
	pdf.Ln(6)
	if q.Customer.CompanyName != "" {
		contact := q.Customer.CompanyName
		if q.Customer.ContactName != "" {
			contact += " / " + q.Customer.ContactName
		}
		pdf.Cell(0, 6, fmt.Sprintf("고객사: %s", contact))
		pdf.Ln(6)
	}
	if q.ManagerName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("담당자: %s %s", q.ManagerName, q.ManagerPosition))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Noto", "B", 10)
	pdf.Cell(25, 7, "구분")
	pdf.Cell(65, 7, "상세내용")
	pdf.Cell(20, 7, "기간")
	pdf.Cell(15, 7, "수량")
	pdf.Cell(25, 7, "단가")
	pdf.Cell(30, 7, "금액")
	pdf.Ln(8)

	pdf.SetFont("Noto", "", 9)
	for _, it := range q.Items {
		pdf.Cell(25, 6, trimRunes(it.Category, 12))
		pdf.Cell(65, 6, trimRunes(it.Detail, 35))
		pdf.Cell(20, 6, it.Period)
		pdf.Cell(15, 6, strconv.FormatFloat(it.Quantity, 'f', -1, 64))
		pdf.Cell(25, 6, formatWon(it.Price))
		pdf.Cell(30, 6, formatWon(it.Amount))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Noto", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("합계 (VAT 제외): %s원", formatWon(q.TotalAmount)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("합계 (VAT 포함): %s원", formatWon(q.TotalWithVAT())))
	pdf.Ln(8)

	pdf.SetFont("Noto", "", 9)
	if q.Validity != "" {
		pdf.Cell(0, 5, fmt.Sprintf("견적 유효기간: %s", q.Validity))
		pdf.Ln(5)
	}
	if q.PaymentInfo != "" {
		pdf.Cell(0, 5, fmt.Sprintf("결제 방법: %s", q.PaymentInfo))
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatWon renders an amount with thousands separators.
func formatWon(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func trimRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func sanitizeExportName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "\"", "_")
	out := replacer.Replace(name)
	if out == "" {
		out = "quote"
	}
	return out
}
