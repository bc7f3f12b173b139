package main

import "math"

// IncomeTaxInput holds the take-home pay calculator inputs (annual GBP unless stated)
type IncomeTaxInput struct {
	GrossSalary                float64         `json:"gross_salary"`
	OtherIncome                float64         `json:"other_income"`
	MonthlyPensionContribution float64         `json:"monthly_pension_contribution"` // Relief at source is not modelled: deducted before tax
	Region                     Region          `json:"region"`
	StudentLoanPlan            StudentLoanPlan `json:"student_loan_plan"`
}

// IncomeTaxResult is the full take-home breakdown for one year
type IncomeTaxResult struct {
	AnnualPension        float64              `json:"annual_pension"`
	TaxableIncome        float64              `json:"taxable_income"`
	IncomeTax            float64              `json:"income_tax"`
	NationalInsurance    float64              `json:"national_insurance"`
	StudentLoanRepayment float64              `json:"student_loan_repayment"`
	NetAnnual            float64              `json:"net_annual"`
	NetMonthly           float64              `json:"net_monthly"`
	GrossMonthly         float64              `json:"gross_monthly"`
	EffectiveRate        float64              `json:"effective_rate"` // (income tax + NI) as % of gross salary
	MarginalRate         float64              `json:"marginal_rate"`
	TaxBreakdown         []BandBreakdownEntry `json:"tax_breakdown"`
	NIBreakdown          []BandBreakdownEntry `json:"ni_breakdown"`
}

// CalculateIncomeTax works out income tax, National Insurance and student loan
// repayments for a salary using the region's ladder for the tax year.
//
// Pension contributions reduce taxable income but not NI-able pay, and NI and
// student loans are charged on salary alone. Take-home pay is salary based:
// other income is taxed but not added to NetAnnual.
func CalculateIncomeTax(in IncomeTaxInput, ty *TaxYearConfig) (IncomeTaxResult, error) {
	bands, err := ty.IncomeTaxBands(in.Region)
	if err != nil {
		return IncomeTaxResult{}, err
	}
	plan, err := ty.StudentLoan(in.StudentLoanPlan)
	if err != nil {
		return IncomeTaxResult{}, err
	}

	var result IncomeTaxResult
	result.AnnualPension = in.MonthlyPensionContribution * 12
	result.TaxableIncome = math.Max(0, in.GrossSalary+in.OtherIncome-result.AnnualPension)

	bands = ApplyPersonalAllowanceTaper(bands, result.TaxableIncome, ty.PersonalAllowanceTaper)
	tax := ComputeBandedLevy(result.TaxableIncome, bands)
	result.IncomeTax = tax.Total
	result.TaxBreakdown = tax.Breakdown
	result.MarginalRate = MarginalRate(result.TaxableIncome, bands)

	ni := ComputeBandedLevy(in.GrossSalary, ty.NationalInsurance)
	result.NationalInsurance = ni.Total
	result.NIBreakdown = ni.Breakdown

	result.StudentLoanRepayment = CalculateStudentLoan(in.GrossSalary, plan)

	result.NetAnnual = in.GrossSalary - result.IncomeTax - result.NationalInsurance -
		result.AnnualPension - result.StudentLoanRepayment
	result.NetMonthly = result.NetAnnual / 12
	result.GrossMonthly = in.GrossSalary / 12

	if in.GrossSalary > 0 {
		result.EffectiveRate = (result.IncomeTax + result.NationalInsurance) / in.GrossSalary * 100
	}

	return result, nil
}

// CalculateStudentLoan returns the annual repayment on salary above the plan threshold.
// A zero plan (no loan) repays nothing.
func CalculateStudentLoan(grossSalary float64, plan StudentLoanPlanConfig) float64 {
	if plan.Rate == 0 {
		return 0
	}
	return math.Max(0, grossSalary-plan.Threshold) * plan.Rate
}
