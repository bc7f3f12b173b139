package main

import (
	"fmt"
	"math"
	"time"
)

const (
	// paidOffEpsilon is the residual balance (half a penny) treated as fully repaid
	paidOffEpsilon = 0.005

	// MaxTermYears bounds a mortgage term so a schedule stays at most 1,200 months
	MaxTermYears = 100
)

// MortgageInput describes a loan and any overpayments
type MortgageInput struct {
	Principal          float64      `json:"principal"`
	AnnualRatePercent  float64      `json:"annual_rate_percent"` // e.g. 5.5 for 5.5%
	TermYears          int          `json:"term_years"`
	Type               MortgageType `json:"type"`
	MonthlyOverpayment float64      `json:"monthly_overpayment"`
	LumpSum            float64      `json:"lump_sum"`
	LumpSumYear        int          `json:"lump_sum_year"` // Paid with the last payment of this year; 0 = never
}

// HasOverpayments returns true if any overpayment is configured
func (m MortgageInput) HasOverpayments() bool {
	return m.MonthlyOverpayment > 0 || m.LumpSum > 0
}

// Validate rejects a term outside 0..MaxTermYears. Negative money values are
// left to the caller to clamp.
func (m MortgageInput) Validate() error {
	if m.TermYears < 0 || m.TermYears > MaxTermYears {
		return fmt.Errorf("%w: term_years must be between 0 and %d (got %d)", ErrOutOfRange, MaxTermYears, m.TermYears)
	}
	if m.LumpSumYear < 0 || m.LumpSumYear > MaxTermYears {
		return fmt.Errorf("%w: lump_sum_year must be between 0 and %d (got %d)", ErrOutOfRange, MaxTermYears, m.LumpSumYear)
	}
	return nil
}

// MortgageScheduleEntry is one monthly payment in an amortization schedule
type MortgageScheduleEntry struct {
	Period             int     `json:"period"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingBalance   float64 `json:"remaining_balance"`
	CumulativeInterest float64 `json:"cumulative_interest"`
	Year               int     `json:"year"`
}

// AmortizationResult is one run of the schedule
type AmortizationResult struct {
	Schedule               []MortgageScheduleEntry `json:"schedule"`
	StandardMonthlyPayment float64                 `json:"standard_monthly_payment"` // Contractual payment before overpayments
	TotalInterest          float64                 `json:"total_interest"`
	TotalPaid              float64                 `json:"total_paid"`
	PayoffMonth            int                     `json:"payoff_month"`
}

// OverpaymentSavings compares an overpayment run against the contractual schedule
type OverpaymentSavings struct {
	MonthsSaved          int     `json:"months_saved"`
	YearsSaved           int     `json:"years_saved"`
	RemainderMonthsSaved int     `json:"remainder_months_saved"` // MonthsSaved = YearsSaved*12 + RemainderMonthsSaved
	InterestSaved        float64 `json:"interest_saved"`
	NewTermMonths        int     `json:"new_term_months"`
}

// MortgageResult holds the baseline schedule and, when overpayments are set,
// the overpayment schedule and what it saves
type MortgageResult struct {
	Baseline        AmortizationResult  `json:"baseline"`
	WithOverpayment *AmortizationResult `json:"with_overpayment,omitempty"`
	Savings         *OverpaymentSavings `json:"savings,omitempty"`
}

// MonthlyPayment calculates the contractual monthly payment.
// Repayment uses M = P * [r(1+r)^n] / [(1+r)^n - 1]; interest-only pays P * r.
// Zero or negative principal, rate or term gives 0.
func MonthlyPayment(principal, annualRatePercent float64, termYears int, mortgageType MortgageType) float64 {
	if principal <= 0 || annualRatePercent <= 0 || termYears <= 0 {
		return 0
	}

	monthlyRate := annualRatePercent / 1200
	if mortgageType == InterestOnly {
		return principal * monthlyRate
	}

	factor := math.Pow(1+monthlyRate, float64(termYears*12))
	return principal * (monthlyRate * factor) / (factor - 1)
}

// RemainingBalanceAfter returns the repayment balance after paymentsMade contractual payments
// using B = P * [(1+r)^n - (1+r)^p] / [(1+r)^n - 1]
func RemainingBalanceAfter(principal, annualRatePercent float64, termYears, paymentsMade int) float64 {
	if principal <= 0 || annualRatePercent <= 0 || termYears <= 0 {
		return 0
	}
	if paymentsMade <= 0 {
		return principal
	}
	totalPayments := termYears * 12
	if paymentsMade >= totalPayments {
		return 0
	}

	monthlyRate := annualRatePercent / 1200
	factorN := math.Pow(1+monthlyRate, float64(totalPayments))
	factorP := math.Pow(1+monthlyRate, float64(paymentsMade))

	return principal * (factorN - factorP) / (factorN - 1)
}

// Amortize generates the payment schedule one month at a time until the balance
// reaches zero or the term ends. Overpayments shorten a repayment schedule;
// they are ignored for interest-only loans, whose capital is repaid in the
// final month. A term above MaxTermYears is treated like a zero term.
func Amortize(in MortgageInput) AmortizationResult {
	var result AmortizationResult
	if in.Principal <= 0 || in.AnnualRatePercent <= 0 || in.TermYears <= 0 || in.TermYears > MaxTermYears {
		return result
	}

	result.StandardMonthlyPayment = MonthlyPayment(in.Principal, in.AnnualRatePercent, in.TermYears, in.Type)
	if in.Type == InterestOnly {
		result.Schedule = interestOnlySchedule(in, result.StandardMonthlyPayment)
	} else {
		result.Schedule = repaymentSchedule(in, result.StandardMonthlyPayment)
	}

	for _, entry := range result.Schedule {
		result.TotalPaid += entry.Payment
	}
	if n := len(result.Schedule); n > 0 {
		result.TotalInterest = result.Schedule[n-1].CumulativeInterest
		result.PayoffMonth = n
	}
	return result
}

func repaymentSchedule(in MortgageInput, basePayment float64) []MortgageScheduleEntry {
	monthlyRate := in.AnnualRatePercent / 1200
	maxMonths := in.TermYears * 12
	lumpSumMonth := in.LumpSumYear * 12

	schedule := make([]MortgageScheduleEntry, 0, maxMonths)
	balance := in.Principal
	var cumulativeInterest float64

	for month := 1; month <= maxMonths && balance > 0; month++ {
		interest := balance * monthlyRate

		payment := basePayment + in.MonthlyOverpayment
		if month == lumpSumMonth {
			payment += in.LumpSum
		}

		// Don't pay more than the remaining balance; a sub-penny residue counts as repaid
		principal := payment - interest
		if principal >= balance-paidOffEpsilon {
			principal = balance
			payment = balance + interest
		}

		balance -= principal
		if balance < 0 {
			balance = 0
		}
		cumulativeInterest += interest

		schedule = append(schedule, MortgageScheduleEntry{
			Period:             month,
			Payment:            payment,
			Principal:          principal,
			Interest:           interest,
			RemainingBalance:   balance,
			CumulativeInterest: cumulativeInterest,
			Year:               (month + 11) / 12,
		})
	}

	return schedule
}

func interestOnlySchedule(in MortgageInput, interest float64) []MortgageScheduleEntry {
	months := in.TermYears * 12
	schedule := make([]MortgageScheduleEntry, 0, months)

	for month := 1; month <= months; month++ {
		entry := MortgageScheduleEntry{
			Period:             month,
			Payment:            interest,
			Interest:           interest,
			RemainingBalance:   in.Principal,
			CumulativeInterest: interest * float64(month),
			Year:               (month + 11) / 12,
		}
		// Balloon: capital falls due with the final payment
		if month == months {
			entry.Principal = in.Principal
			entry.Payment += in.Principal
			entry.RemainingBalance = 0
		}
		schedule = append(schedule, entry)
	}

	return schedule
}

// CalculateMortgage runs the contractual schedule and, when overpayments are
// set, a second schedule with them, reporting the time and interest saved.
func CalculateMortgage(in MortgageInput) MortgageResult {
	baselineInput := in
	baselineInput.MonthlyOverpayment = 0
	baselineInput.LumpSum = 0

	result := MortgageResult{Baseline: Amortize(baselineInput)}
	if !in.HasOverpayments() || in.Type == InterestOnly || result.Baseline.PayoffMonth == 0 {
		return result
	}

	overpaid := Amortize(in)
	result.WithOverpayment = &overpaid

	monthsSaved := result.Baseline.PayoffMonth - overpaid.PayoffMonth
	result.Savings = &OverpaymentSavings{
		MonthsSaved:          monthsSaved,
		YearsSaved:           monthsSaved / 12,
		RemainderMonthsSaved: monthsSaved % 12,
		InterestSaved:        result.Baseline.TotalInterest - overpaid.TotalInterest,
		NewTermMonths:        overpaid.PayoffMonth,
	}
	return result
}

// MortgageYearSummary totals one year of a schedule
type MortgageYearSummary struct {
	Year             int     `json:"year"`
	Paid             float64 `json:"paid"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remaining_balance"` // After the year's last payment
}

// SummariseByYear collapses a monthly schedule to one entry per year
func SummariseByYear(schedule []MortgageScheduleEntry) []MortgageYearSummary {
	var years []MortgageYearSummary
	for _, e := range schedule {
		if n := len(years); n == 0 || years[n-1].Year != e.Year {
			years = append(years, MortgageYearSummary{Year: e.Year})
		}
		y := &years[len(years)-1]
		y.Paid += e.Payment
		y.Principal += e.Principal
		y.Interest += e.Interest
		y.RemainingBalance = e.RemainingBalance
	}
	return years
}

// LoanToValue splits a purchase into the loan needed and the deposit and LTV percentages.
// A deposit larger than the price gives a zero loan.
func LoanToValue(price, deposit float64) (loan, depositPercent, ltvPercent float64) {
	loan = math.Max(0, price-deposit)
	if price > 0 {
		depositPercent = deposit / price * 100
		ltvPercent = loan / price * 100
	}
	return loan, depositPercent, ltvPercent
}

// PayoffDate is the month the last of months payments falls due, counting from start
func PayoffDate(start time.Time, months int) time.Time {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	return first.AddDate(0, months, 0)
}
