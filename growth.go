package main

import "fmt"

const (
	// MaxGrowthYears bounds a projection horizon
	MaxGrowthYears = 100
	// MaxPeriodsPerYear allows up to daily compounding
	MaxPeriodsPerYear = 365
)

// GrowthInput describes a savings or investment pot
type GrowthInput struct {
	InitialPrincipal     float64 `json:"initial_principal"`
	PeriodicContribution float64 `json:"periodic_contribution"` // Added at the end of every compounding period
	AnnualRatePercent    float64 `json:"annual_rate_percent"`
	Years                int     `json:"years"`
	PeriodsPerYear       int     `json:"periods_per_year"` // Defaults to 12 (monthly)
}

// Validate rejects a horizon or compounding frequency that would make the
// projection loop unbounded. A zero or negative PeriodsPerYear means monthly.
func (g GrowthInput) Validate() error {
	if g.Years < 0 || g.Years > MaxGrowthYears {
		return fmt.Errorf("%w: years must be between 0 and %d (got %d)", ErrOutOfRange, MaxGrowthYears, g.Years)
	}
	if g.PeriodsPerYear > MaxPeriodsPerYear {
		return fmt.Errorf("%w: periods_per_year must be at most %d (got %d)", ErrOutOfRange, MaxPeriodsPerYear, g.PeriodsPerYear)
	}
	return nil
}

// GrowthPoint is the state of the pot at the end of a year. Year 0 is the starting position.
type GrowthPoint struct {
	Year          int     `json:"year"`
	Balance       float64 `json:"balance"`
	Contributions float64 `json:"contributions"` // Initial principal plus everything paid in
	Growth        float64 `json:"growth"`        // Balance - Contributions
}

// GrowthSummary condenses a projection
type GrowthSummary struct {
	FinalBalance       float64 `json:"final_balance"`
	TotalContributions float64 `json:"total_contributions"`
	InterestEarned     float64 `json:"interest_earned"`
	EffectiveReturn    float64 `json:"effective_return"` // Interest as % of contributions
	GrowthMultiple     float64 `json:"growth_multiple"`  // Final balance / initial principal
}

// SimpleInterestResult is interest on a fixed principal with no compounding
type SimpleInterestResult struct {
	Interest    float64 `json:"interest"`
	FinalAmount float64 `json:"final_amount"`
}

// ProjectGrowth compounds the pot period by period and records one point per year.
// Each period: balance = balance * (1 + rate/periods) + contribution.
// A horizon or frequency above its limit projects nothing.
func ProjectGrowth(in GrowthInput) []GrowthPoint {
	if in.Years > MaxGrowthYears || in.PeriodsPerYear > MaxPeriodsPerYear {
		return nil
	}
	periods := in.PeriodsPerYear
	if periods <= 0 {
		periods = 12
	}
	periodRate := in.AnnualRatePercent / 100 / float64(periods)

	balance := in.InitialPrincipal
	contributions := in.InitialPrincipal

	years := max(in.Years, 0)
	points := make([]GrowthPoint, 0, years+1)
	points = append(points, GrowthPoint{Year: 0, Balance: balance, Contributions: contributions})

	for year := 1; year <= years; year++ {
		for p := 0; p < periods; p++ {
			balance = balance*(1+periodRate) + in.PeriodicContribution
			contributions += in.PeriodicContribution
		}
		points = append(points, GrowthPoint{
			Year:          year,
			Balance:       balance,
			Contributions: contributions,
			Growth:        balance - contributions,
		})
	}

	return points
}

// SummariseGrowth reports the totals from the last point of a projection
func SummariseGrowth(points []GrowthPoint) GrowthSummary {
	if len(points) == 0 {
		return GrowthSummary{}
	}
	first, last := points[0], points[len(points)-1]

	s := GrowthSummary{
		FinalBalance:       last.Balance,
		TotalContributions: last.Contributions,
		InterestEarned:     last.Balance - last.Contributions,
	}
	if s.TotalContributions > 0 {
		s.EffectiveReturn = s.InterestEarned / s.TotalContributions * 100
	}
	if first.Balance > 0 {
		s.GrowthMultiple = last.Balance / first.Balance
	}
	return s
}

// CalculateSimpleInterest returns P * R * T
func CalculateSimpleInterest(principal, annualRatePercent, years float64) SimpleInterestResult {
	interest := principal * annualRatePercent / 100 * years
	return SimpleInterestResult{Interest: interest, FinalAmount: principal + interest}
}
