package main

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input    string
		expected Region
	}{
		{"", RegionEngland},
		{"england", RegionEngland},
		{"Wales", RegionEngland},
		{"NI", RegionEngland},
		{" scotland ", RegionScotland},
	}
	for _, tc := range tests {
		got, err := ParseRegion(tc.input)
		if err != nil || got != tc.expected {
			t.Errorf("ParseRegion(%q) = %v, %v; want %v", tc.input, got, err, tc.expected)
		}
	}
	if _, err := ParseRegion("france"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("Expected ErrUnknownRegion, got %v", err)
	}
}

func TestParseStudentLoanPlan(t *testing.T) {
	for input, expected := range map[string]StudentLoanPlan{
		"":         PlanNone,
		"none":     PlanNone,
		"PLAN2":    Plan2,
		"postgrad": PlanPostgrad,
	} {
		got, err := ParseStudentLoanPlan(input)
		if err != nil || got != expected {
			t.Errorf("ParseStudentLoanPlan(%q) = %v, %v; want %v", input, got, err, expected)
		}
	}
	if _, err := ParseStudentLoanPlan("plan3"); !errors.Is(err, ErrUnknownStudentLoanPlan) {
		t.Errorf("Expected ErrUnknownStudentLoanPlan, got %v", err)
	}
}

func TestParseBuyerCategory(t *testing.T) {
	for input, expected := range map[string]BuyerCategory{
		"":           StandardBuyer,
		"standard":   StandardBuyer,
		"first-time": FirstTimeBuyer,
		"ftb":        FirstTimeBuyer,
		"additional": AdditionalProperty,
		"btl":        AdditionalProperty,
	} {
		got, err := ParseBuyerCategory(input)
		if err != nil || got != expected {
			t.Errorf("ParseBuyerCategory(%q) = %v, %v; want %v", input, got, err, expected)
		}
	}
	if _, err := ParseBuyerCategory("landlord"); !errors.Is(err, ErrUnknownBuyerCategory) {
		t.Errorf("Expected ErrUnknownBuyerCategory, got %v", err)
	}
}

func TestParseMaritalStatusAndMortgageType(t *testing.T) {
	if m, err := ParseMaritalStatus("Widowed"); err != nil || m != Widowed {
		t.Errorf("ParseMaritalStatus(Widowed) = %v, %v", m, err)
	}
	if _, err := ParseMaritalStatus("engaged"); !errors.Is(err, ErrUnknownMaritalStatus) {
		t.Errorf("Expected ErrUnknownMaritalStatus, got %v", err)
	}
	if m, err := ParseMortgageType("interest-only"); err != nil || m != InterestOnly {
		t.Errorf("ParseMortgageType(interest-only) = %v, %v", m, err)
	}
	if _, err := ParseMortgageType("offset"); !errors.Is(err, ErrUnknownMortgageType) {
		t.Errorf("Expected ErrUnknownMortgageType, got %v", err)
	}
}

func TestEnumsRoundTripThroughJSON(t *testing.T) {
	in := IncomeTaxInput{GrossSalary: 40000, Region: RegionScotland, StudentLoanPlan: Plan1}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"region":"scotland"`) {
		t.Errorf("Region should marshal by name: %s", data)
	}

	var decoded IncomeTaxInput
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != in {
		t.Errorf("Round trip changed the input: %+v", decoded)
	}

	var bad MortgageInput
	if err := json.Unmarshal([]byte(`{"type":"balloon"}`), &bad); !errors.Is(err, ErrUnknownMortgageType) {
		t.Errorf("Expected ErrUnknownMortgageType from JSON, got %v", err)
	}
}

func TestTaxBandJSON_UnboundedUpper(t *testing.T) {
	band := TaxBand{Name: "Additional Rate", Lower: 125140, Upper: math.Inf(1), Rate: 0.45}
	data, err := json.Marshal(band)
	if err != nil {
		t.Fatalf("Marshalling an unbounded band failed: %v", err)
	}
	if !strings.Contains(string(data), `"upper":null`) {
		t.Errorf("Unbounded upper should be null, got %s", data)
	}

	levy := ComputeBandedLevy(200000, ukTaxBands2024)
	if _, err := json.Marshal(levy); err != nil {
		t.Errorf("Marshalling a breakdown with an open top band failed: %v", err)
	}
}
