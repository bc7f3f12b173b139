package main

import (
	"math"
	"testing"
)

// Mathematical Invariants Test Suite
//
// Property tests that must hold regardless of input values. They check the
// logical consistency of the calculators rather than specific figures.

// =============================================================================
// Banded levy invariants
// =============================================================================

func TestInvariant_LevyMonotonicallyIncreases(t *testing.T) {
	ty := loadTaxYear(t, "2025/26")
	ladders := map[string][]TaxBand{
		"income tax":      ukTaxBands2024,
		"SDLT":            ty.StampDuty.Standard,
		"SDLT additional": ty.StampDuty.AdditionalProperty,
		"NI":              ty.NationalInsurance,
	}

	for name, bands := range ladders {
		previous := 0.0
		for amount := 0.0; amount <= 3000000; amount += 2500 {
			total := ComputeBandedLevy(amount, bands).Total
			if total < previous {
				t.Errorf("%s: levy fell from £%.2f to £%.2f at £%.0f", name, previous, total, amount)
			}
			previous = total
		}
	}
}

func TestInvariant_BreakdownSumsToTotal(t *testing.T) {
	amounts := []float64{0, 1, 12570, 50270, 99999.99, 125140, 1e6}

	for _, amount := range amounts {
		levy := ComputeBandedLevy(amount, ukTaxBands2024)
		var levied, inBands float64
		for _, e := range levy.Breakdown {
			levied += e.LeviedInBand
			inBands += e.AmountInBand
		}
		if math.Abs(levied-levy.Total) > 1e-9 {
			t.Errorf("£%.2f: breakdown sums to %.6f, total is %.6f", amount, levied, levy.Total)
		}
		if math.Abs(inBands-amount) > 1e-6 {
			t.Errorf("£%.2f: amounts in bands sum to %.6f", amount, inBands)
		}
	}
}

func TestInvariant_LevyNeverExceedsAmount(t *testing.T) {
	for _, amount := range []float64{1000, 50000, 200000, 5e6} {
		levy := ComputeBandedLevy(amount, ukTaxBands2024).Total
		if levy > amount {
			t.Errorf("Levy £%.2f exceeds amount £%.0f", levy, amount)
		}
	}
}

func TestInvariant_TaperedTaxNeverBelowUntapered(t *testing.T) {
	for income := 90000.0; income <= 160000; income += 1000 {
		if taxWithTaper(income) < taxOn(income) {
			t.Errorf("Tapering reduced tax at £%.0f", income)
		}
	}
}

// =============================================================================
// Income tax invariants
// =============================================================================

func TestInvariant_NetNeverExceedsGross(t *testing.T) {
	ty := loadTaxYear(t, "")
	for _, region := range []Region{RegionEngland, RegionScotland} {
		for _, plan := range []StudentLoanPlan{PlanNone, Plan2, PlanPostgrad} {
			for _, salary := range []float64{0, 15000, 30000, 60000, 110000, 250000} {
				r, err := CalculateIncomeTax(IncomeTaxInput{
					GrossSalary:                salary,
					MonthlyPensionContribution: 200,
					Region:                     region,
					StudentLoanPlan:            plan,
				}, ty)
				if err != nil {
					t.Fatal(err)
				}
				if r.NetAnnual > salary+1e-9 {
					t.Errorf("%v/%s £%.0f: net £%.2f exceeds gross", region, plan, salary, r.NetAnnual)
				}
				if r.IncomeTax < 0 || r.NationalInsurance < 0 || r.StudentLoanRepayment < 0 {
					t.Errorf("%v/%s £%.0f: negative deduction %+v", region, plan, salary, r)
				}
			}
		}
	}
}

// =============================================================================
// Mortgage invariants
// =============================================================================

func TestInvariant_ScheduleInterestSumsToTotal(t *testing.T) {
	inputs := []MortgageInput{
		repayment(200000, 4.5, 25),
		repayment(320000, 5.5, 25),
		{Principal: 150000, AnnualRatePercent: 3.9, TermYears: 20, MonthlyOverpayment: 350},
		{Principal: 250000, AnnualRatePercent: 6, TermYears: 30, LumpSum: 20000, LumpSumYear: 5},
		{Principal: 100000, AnnualRatePercent: 5, TermYears: 10, Type: InterestOnly},
	}

	for _, in := range inputs {
		r := Amortize(in)
		var interest, principal, paid float64
		for _, e := range r.Schedule {
			interest += e.Interest
			principal += e.Principal
			paid += e.Payment
		}

		if math.Abs(interest-r.TotalInterest) > 0.01 {
			t.Errorf("%+v: schedule interest %.2f, total %.2f", in, interest, r.TotalInterest)
		}
		if math.Abs(principal-in.Principal) > 0.01 {
			t.Errorf("%+v: principal repaid %.2f, borrowed %.2f", in, principal, in.Principal)
		}
		if math.Abs(paid-(in.Principal+r.TotalInterest)) > 0.01 {
			t.Errorf("%+v: total paid %.2f should be principal plus interest", in, paid)
		}
		if last := r.Schedule[len(r.Schedule)-1]; last.RemainingBalance != 0 {
			t.Errorf("%+v: final balance %.6f", in, last.RemainingBalance)
		}
	}
}

func TestInvariant_MoreOverpaymentNeverCostsMore(t *testing.T) {
	previousMonths := math.MaxInt
	previousInterest := math.Inf(1)

	for _, overpayment := range []float64{0, 50, 100, 250, 500, 1000, 5000} {
		in := repayment(250000, 5, 25)
		in.MonthlyOverpayment = overpayment
		r := Amortize(in)

		if r.PayoffMonth > previousMonths {
			t.Errorf("£%.0f/month overpayment lengthened the term to %d months", overpayment, r.PayoffMonth)
		}
		if r.TotalInterest > previousInterest {
			t.Errorf("£%.0f/month overpayment increased interest to £%.2f", overpayment, r.TotalInterest)
		}
		previousMonths, previousInterest = r.PayoffMonth, r.TotalInterest
	}
}

func TestInvariant_BalanceNeverNegative(t *testing.T) {
	in := MortgageInput{Principal: 50000, AnnualRatePercent: 7, TermYears: 15, MonthlyOverpayment: 3000, LumpSum: 40000, LumpSumYear: 1}
	for _, e := range Amortize(in).Schedule {
		if e.RemainingBalance < 0 || e.Principal < 0 {
			t.Fatalf("Month %d went negative: %+v", e.Period, e)
		}
	}
}

// =============================================================================
// Inheritance tax invariants
// =============================================================================

func TestInvariant_InheritanceTaxBounds(t *testing.T) {
	cfg := ihtConfig(t)
	for _, status := range []MaritalStatus{Single, Married, Widowed} {
		for _, estate := range []float64{0, 300000, 900000, 2500000, 10000000} {
			in := InheritanceTaxInput{
				Property:                   estate / 2,
				Investments:                estate / 2,
				MaritalStatus:              status,
				PassResidenceToDescendants: true,
			}
			r := CalculateInheritanceTax(in, cfg)

			if status == Married && r.TaxDue != 0 {
				t.Errorf("Married estate £%.0f paid £%.2f", estate, r.TaxDue)
			}
			if r.TaxDue < 0 || r.TaxDue > r.NetEstate {
				t.Errorf("%v £%.0f: tax £%.2f outside [0, net estate]", status, estate, r.TaxDue)
			}
			if math.Abs(r.BeneficiariesReceive+r.TaxDue-r.NetEstate) > 1e-6 {
				t.Errorf("%v £%.0f: beneficiaries plus tax should equal the estate", status, estate)
			}
		}
	}
}

// =============================================================================
// Growth invariants
// =============================================================================

func TestInvariant_GrowthBalanceAtLeastContributions(t *testing.T) {
	for _, rate := range []float64{0, 1, 5, 12} {
		points := ProjectGrowth(GrowthInput{InitialPrincipal: 5000, PeriodicContribution: 150, AnnualRatePercent: rate, Years: 20})
		for i, p := range points {
			if p.Balance < p.Contributions-1e-6 {
				t.Errorf("%.0f%% year %d: balance £%.2f below contributions £%.2f", rate, p.Year, p.Balance, p.Contributions)
			}
			if i > 0 && p.Balance < points[i-1].Balance {
				t.Errorf("%.0f%% year %d: balance fell", rate, p.Year)
			}
		}
	}
}
