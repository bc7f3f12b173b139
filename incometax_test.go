package main

import (
	"errors"
	"testing"
)

// Take-home pay tests against the 2024/25 schedules
// Reference: https://www.gov.uk/national-insurance-rates-letters
//            https://www.gov.uk/repaying-your-student-loan/what-you-pay

func TestIncomeTax_England50k(t *testing.T) {
	ty := loadTaxYear(t, "2024/25")
	r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 50000}, ty)
	if err != nil {
		t.Fatal(err)
	}

	assertTaxEquals(t, 50000, r.TaxableIncome, "Taxable income")
	assertTaxEquals(t, 7486, r.IncomeTax, "Income tax: (50000-12570) × 20%")
	assertTaxEquals(t, 2994.40, r.NationalInsurance, "NI: (50000-12570) × 8%")
	assertTaxEquals(t, 0, r.StudentLoanRepayment, "No student loan")
	assertTaxEquals(t, 39519.60, r.NetAnnual, "Net annual")
	assertTaxEquals(t, 3293.30, r.NetMonthly, "Net monthly")
	assertTaxEquals(t, 4166.67, r.GrossMonthly, "Gross monthly")
	assertTaxEquals(t, 20.96, r.EffectiveRate, "Effective rate %")

	if r.MarginalRate != 0.20 {
		t.Errorf("Marginal rate should be 20%%, got %.2f", r.MarginalRate)
	}
	if len(r.TaxBreakdown) != 2 || len(r.NIBreakdown) != 2 {
		t.Errorf("Expected 2 tax and 2 NI bands, got %d and %d", len(r.TaxBreakdown), len(r.NIBreakdown))
	}
}

func TestIncomeTax_Scotland50k(t *testing.T) {
	ty := loadTaxYear(t, "2024/25")
	r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 50000, Region: RegionScotland}, ty)
	if err != nil {
		t.Fatal(err)
	}

	// Starter:      (14876-12570) × 19% =  438.14
	// Basic:        (26561-14876) × 20% = 2337.00
	// Intermediate: (43662-26561) × 21% = 3591.21
	// Higher:       (50000-43662) × 42% = 2661.96
	assertTaxEquals(t, 9028.31, r.IncomeTax, "Scottish income tax")
	assertTaxEquals(t, 2994.40, r.NationalInsurance, "NI is UK-wide")
	if r.MarginalRate != 0.42 {
		t.Errorf("Marginal rate should be 42%%, got %.2f", r.MarginalRate)
	}
}

func TestIncomeTax_PensionReducesTaxNotNI(t *testing.T) {
	ty := loadTaxYear(t, "2024/25")
	r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 60000, MonthlyPensionContribution: 500}, ty)
	if err != nil {
		t.Fatal(err)
	}

	assertTaxEquals(t, 6000, r.AnnualPension, "Annual pension")
	assertTaxEquals(t, 54000, r.TaxableIncome, "Taxable income after pension")
	// 7540 + (54000-50270) × 40% = 7540 + 1492
	assertTaxEquals(t, 9032, r.IncomeTax, "Income tax")
	// 37700 × 8% + (60000-50270) × 2% = 3016 + 194.60
	assertTaxEquals(t, 3210.60, r.NationalInsurance, "NI on full salary")
	assertTaxEquals(t, 41757.40, r.NetAnnual, "Net annual")
}

func TestIncomeTax_OtherIncomeTaxedButNotTakeHome(t *testing.T) {
	ty := loadTaxYear(t, "2024/25")
	r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 30000, OtherIncome: 10000}, ty)
	if err != nil {
		t.Fatal(err)
	}

	assertTaxEquals(t, 40000, r.TaxableIncome, "Taxable includes other income")
	assertTaxEquals(t, 5486, r.IncomeTax, "Income tax on 40000")
	assertTaxEquals(t, 1394.40, r.NationalInsurance, "NI on salary only")
	assertTaxEquals(t, 23119.60, r.NetAnnual, "Net is salary based")
}

func TestIncomeTax_StudentLoans(t *testing.T) {
	ty := loadTaxYear(t, "2024/25")
	tests := []struct {
		plan     StudentLoanPlan
		salary   float64
		expected float64
	}{
		{Plan1, 40000, 1350.90},     // (40000-24990) × 9%
		{Plan2, 40000, 1143.45},     // (40000-27295) × 9%
		{Plan4, 40000, 774.45},      // (40000-31395) × 9%
		{PlanPostgrad, 40000, 1140}, // (40000-21000) × 6%
		{Plan2, 25000, 0},           // Below threshold
		{PlanNone, 90000, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.plan), func(t *testing.T) {
			r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: tc.salary, StudentLoanPlan: tc.plan}, ty)
			if err != nil {
				t.Fatal(err)
			}
			assertTaxEquals(t, tc.expected, r.StudentLoanRepayment, "Student loan "+string(tc.plan))
		})
	}
}

func TestIncomeTax_TaperWhenEnabled(t *testing.T) {
	ty := loadTaxYear(t, "2024/25")

	r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 110000}, ty)
	if err != nil {
		t.Fatal(err)
	}
	assertTaxEquals(t, 31432, r.IncomeTax, "Published ladder as-is: 7540 + 23892")

	ty.PersonalAllowanceTaper.Enabled = true
	r, err = CalculateIncomeTax(IncomeTaxInput{GrossSalary: 110000}, ty)
	if err != nil {
		t.Fatal(err)
	}
	assertTaxEquals(t, 32432, r.IncomeTax, "Tapered allowance of £7,570")
}

func TestIncomeTax_ZeroSalary(t *testing.T) {
	ty := loadTaxYear(t, "")
	r, err := CalculateIncomeTax(IncomeTaxInput{}, ty)
	if err != nil {
		t.Fatal(err)
	}
	if r.IncomeTax != 0 || r.NationalInsurance != 0 || r.NetAnnual != 0 || r.EffectiveRate != 0 {
		t.Errorf("Zero salary should give all zeros, got %+v", r)
	}
	if len(r.TaxBreakdown) != 0 {
		t.Errorf("Zero salary should have an empty breakdown")
	}
}

func TestIncomeTax_PensionAboveSalary(t *testing.T) {
	ty := loadTaxYear(t, "")
	r, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 10000, MonthlyPensionContribution: 1000}, ty)
	if err != nil {
		t.Fatal(err)
	}
	if r.TaxableIncome != 0 {
		t.Errorf("Taxable income is floored at 0, got £%.2f", r.TaxableIncome)
	}
}

func TestIncomeTax_InvalidSelectors(t *testing.T) {
	ty := loadTaxYear(t, "")

	_, err := CalculateIncomeTax(IncomeTaxInput{GrossSalary: 30000, Region: Region(5)}, ty)
	if !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("Expected ErrUnknownRegion, got %v", err)
	}
	_, err = CalculateIncomeTax(IncomeTaxInput{GrossSalary: 30000, StudentLoanPlan: "plan7"}, ty)
	if !errors.Is(err, ErrUnknownStudentLoanPlan) {
		t.Errorf("Expected ErrUnknownStudentLoanPlan, got %v", err)
	}
}

func TestCalculateStudentLoan(t *testing.T) {
	plan := StudentLoanPlanConfig{Threshold: 27295, Rate: 0.09}
	assertTaxEquals(t, 0, CalculateStudentLoan(20000, plan), "Below threshold")
	assertTaxEquals(t, 0, CalculateStudentLoan(27295, plan), "At threshold")
	assertTaxEquals(t, 243.45, CalculateStudentLoan(30000, plan), "(30000-27295) × 9%")
	assertTaxEquals(t, 0, CalculateStudentLoan(100000, StudentLoanPlanConfig{}), "No plan")
}
