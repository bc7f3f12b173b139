package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormatMoneyPDF(t *testing.T) {
	if got := FormatMoneyPDF(1965.08); got != "\xa31,965.08" {
		t.Errorf("Expected Latin-1 pound sign, got %q", got)
	}
}

func TestGenerateMortgagePDFReport(t *testing.T) {
	in := repayment(320000, 5.5, 25)
	in.MonthlyOverpayment = 200

	data, err := GenerateMortgagePDFReport(in, CalculateMortgage(in))
	if err != nil {
		t.Fatalf("PDF generation failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestGenerateMortgagePDFReport_EmptySchedule(t *testing.T) {
	in := MortgageInput{Principal: 100000, TermYears: 25}
	data, err := GenerateMortgagePDFReport(in, CalculateMortgage(in))
	if err != nil || len(data) == 0 {
		t.Fatalf("Degenerate input should still render a summary page: %v", err)
	}
}

func TestAPI_MortgagePDF(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/mortgage/pdf",
		strings.NewReader(`{"price": 400000, "deposit": 80000, "annual_rate_percent": 4.5, "term_years": 30}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Body is not a PDF")
	}
}
