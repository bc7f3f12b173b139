package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfText converts UTF-8 text to PDF-safe encoding
// The £ sign in UTF-8 is 0xC2 0xA3, but PDF standard fonts expect Latin-1 (just 0xA3)
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}

// FormatMoneyPDF formats money to the penny for PDF output
func FormatMoneyPDF(amount float64) string {
	return pdfText(FormatMoneyFull(amount))
}

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 5.0
)

// PDFMortgageReport renders a mortgage result as an A4 document
type PDFMortgageReport struct {
	pdf    *fpdf.Fpdf
	input  MortgageInput
	result MortgageResult
	now    time.Time
}

// GenerateMortgagePDFReport creates a PDF with the headline figures, the
// overpayment comparison and a year-by-year schedule
func GenerateMortgagePDFReport(in MortgageInput, result MortgageResult) ([]byte, error) {
	report := &PDFMortgageReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		input:  in,
		result: result,
		now:    time.Now(),
	}

	report.pdf.SetTitle("Mortgage Report", false)
	report.pdf.SetCreator("goFinanceCalculators", false)
	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)

	report.addSummaryPage()
	report.addSchedule("Contractual Schedule", result.Baseline)
	if result.WithOverpayment != nil {
		report.addSchedule("Schedule With Overpayments", *result.WithOverpayment)
	}

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFMortgageReport) addSummaryPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(10)
	r.pdf.CellFormat(contentWidth, 12, "Mortgage Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", r.now.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(10)

	widths := []float64{contentWidth * 0.6, contentWidth * 0.4}

	r.drawSectionHeader("Loan")
	r.drawTableRow([]string{"Amount borrowed", FormatMoneyPDF(r.input.Principal)}, widths, false)
	r.drawTableRow([]string{"Interest rate", fmt.Sprintf("%.2f%%", r.input.AnnualRatePercent)}, widths, false)
	r.drawTableRow([]string{"Term", fmt.Sprintf("%d years", r.input.TermYears)}, widths, false)
	r.drawTableRow([]string{"Type", r.input.Type.String()}, widths, false)
	r.pdf.Ln(8)

	r.drawSectionHeader("Contractual Schedule")
	r.drawAmortizationRows(r.result.Baseline, widths)
	r.pdf.Ln(8)

	if r.result.WithOverpayment != nil {
		r.drawSectionHeader("With Overpayments")
		if r.input.MonthlyOverpayment > 0 {
			r.drawTableRow([]string{"Monthly overpayment", FormatMoneyPDF(r.input.MonthlyOverpayment)}, widths, false)
		}
		if r.input.LumpSum > 0 {
			r.drawTableRow([]string{fmt.Sprintf("Lump sum (end of year %d)", r.input.LumpSumYear), FormatMoneyPDF(r.input.LumpSum)}, widths, false)
		}
		r.drawAmortizationRows(*r.result.WithOverpayment, widths)
		r.pdf.Ln(8)
	}

	if s := r.result.Savings; s != nil {
		r.drawSectionHeader("Savings")
		r.drawTableRow([]string{"Interest saved", FormatMoneyPDF(s.InterestSaved)}, widths, true)
		r.drawTableRow([]string{"Time saved", fmt.Sprintf("%d years %d months", s.YearsSaved, s.RemainderMonthsSaved)}, widths, true)
		r.drawTableRow([]string{"New term", fmt.Sprintf("%d months", s.NewTermMonths)}, widths, false)
		r.pdf.Ln(8)
	}

	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5,
		"This document is for informational purposes only and does not constitute financial advice. "+
			"Figures assume a fixed rate for the whole term.", "", "C", false)
}

func (r *PDFMortgageReport) drawAmortizationRows(a AmortizationResult, widths []float64) {
	r.drawTableRow([]string{"Monthly payment", FormatMoneyPDF(a.StandardMonthlyPayment)}, widths, true)
	r.drawTableRow([]string{"Total interest", FormatMoneyPDF(a.TotalInterest)}, widths, false)
	r.drawTableRow([]string{"Total paid", FormatMoneyPDF(a.TotalPaid)}, widths, false)
	r.drawTableRow([]string{"Paid off after", fmt.Sprintf("%d months", a.PayoffMonth)}, widths, false)
	if a.PayoffMonth > 0 {
		r.drawTableRow([]string{"Paid off by", PayoffDate(r.now, a.PayoffMonth).Format("Jan 2006")}, widths, false)
	}
}

// addSchedule draws one row per year, repeating the header on each new page
func (r *PDFMortgageReport) addSchedule(title string, a AmortizationResult) {
	if len(a.Schedule) == 0 {
		return
	}
	r.pdf.AddPage()
	r.drawSectionHeader(title)

	headers := []string{"Year", "Paid", "Principal", "Interest", "Balance"}
	widths := []float64{20, 40, 40, 40, contentWidth - 140}
	r.drawTableHeader(headers, widths)

	for _, y := range SummariseByYear(a.Schedule) {
		if r.pdf.GetY()+rowHeight > pageHeight-marginBottom {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		r.drawTableRow([]string{
			fmt.Sprintf("%d", y.Year),
			FormatMoneyPDF(y.Paid),
			FormatMoneyPDF(y.Principal),
			FormatMoneyPDF(y.Interest),
			FormatMoneyPDF(y.RemainingBalance),
		}, widths, false)
	}

	r.pdf.Ln(4)
	r.drawTableRow([]string{
		"Total",
		FormatMoneyPDF(a.TotalPaid),
		FormatMoneyPDF(a.TotalPaid - a.TotalInterest),
		FormatMoneyPDF(a.TotalInterest),
		"",
	}, widths, true)
}

// Helper functions

func (r *PDFMortgageReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFMortgageReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFMortgageReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
