package main

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundPence rounds a money amount to two decimal places (half away from zero).
// Calculations run in float64; rounding only happens on the way out.
func RoundPence(v float64) float64 {
	return roundPlaces(v, 2)
}

func roundPlaces(v float64, places int32) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Rounded copies of each result, as returned by the API and printed by the CLI

func roundBreakdown(entries []BandBreakdownEntry) []BandBreakdownEntry {
	out := make([]BandBreakdownEntry, len(entries))
	for i, e := range entries {
		e.AmountInBand = RoundPence(e.AmountInBand)
		e.LeviedInBand = RoundPence(e.LeviedInBand)
		out[i] = e
	}
	return out
}

func (l BandedLevy) Rounded() BandedLevy {
	return BandedLevy{Total: RoundPence(l.Total), Breakdown: roundBreakdown(l.Breakdown)}
}

func (r IncomeTaxResult) Rounded() IncomeTaxResult {
	r.AnnualPension = RoundPence(r.AnnualPension)
	r.TaxableIncome = RoundPence(r.TaxableIncome)
	r.IncomeTax = RoundPence(r.IncomeTax)
	r.NationalInsurance = RoundPence(r.NationalInsurance)
	r.StudentLoanRepayment = RoundPence(r.StudentLoanRepayment)
	r.NetAnnual = RoundPence(r.NetAnnual)
	r.NetMonthly = RoundPence(r.NetMonthly)
	r.GrossMonthly = RoundPence(r.GrossMonthly)
	r.EffectiveRate = RoundPence(r.EffectiveRate)
	r.TaxBreakdown = roundBreakdown(r.TaxBreakdown)
	r.NIBreakdown = roundBreakdown(r.NIBreakdown)
	return r
}

func (c StampDutyComparison) Rounded() StampDutyComparison {
	return StampDutyComparison{
		Standard:             RoundPence(c.Standard),
		FirstTimeBuyer:       RoundPence(c.FirstTimeBuyer),
		AdditionalProperty:   RoundPence(c.AdditionalProperty),
		FirstTimeBuyerSaving: RoundPence(c.FirstTimeBuyerSaving),
	}
}

func (r InheritanceTaxResult) Rounded() InheritanceTaxResult {
	r.GrossEstate = RoundPence(r.GrossEstate)
	r.NetEstate = RoundPence(r.NetEstate)
	r.TaxableEstate = RoundPence(r.TaxableEstate)
	r.NilRateBand = RoundPence(r.NilRateBand)
	r.ResidenceNilRateBand = RoundPence(r.ResidenceNilRateBand)
	r.TotalNilRateBand = RoundPence(r.TotalNilRateBand)
	r.SpouseExemption = RoundPence(r.SpouseExemption)
	r.CharitableDeduction = RoundPence(r.CharitableDeduction)
	r.TaxableAmount = RoundPence(r.TaxableAmount)
	r.TaxDue = RoundPence(r.TaxDue)
	r.BeneficiariesReceive = RoundPence(r.BeneficiariesReceive)
	r.EffectiveRate = RoundPence(r.EffectiveRate)
	r.MonthlySaving = RoundPence(r.MonthlySaving)
	r.GiftsAboveNilRateBand = RoundPence(r.GiftsAboveNilRateBand)
	r.GiftTax = RoundPence(r.GiftTax)
	r.Scenarios.Single = RoundPence(r.Scenarios.Single)
	r.Scenarios.SingleWithResidence = RoundPence(r.Scenarios.SingleWithResidence)
	r.Scenarios.WidowedWithResidence = RoundPence(r.Scenarios.WidowedWithResidence)
	return r
}

func (a AmortizationResult) Rounded() AmortizationResult {
	out := AmortizationResult{
		Schedule:               make([]MortgageScheduleEntry, len(a.Schedule)),
		StandardMonthlyPayment: RoundPence(a.StandardMonthlyPayment),
		TotalInterest:          RoundPence(a.TotalInterest),
		TotalPaid:              RoundPence(a.TotalPaid),
		PayoffMonth:            a.PayoffMonth,
	}
	for i, e := range a.Schedule {
		e.Payment = RoundPence(e.Payment)
		e.Principal = RoundPence(e.Principal)
		e.Interest = RoundPence(e.Interest)
		e.RemainingBalance = RoundPence(e.RemainingBalance)
		e.CumulativeInterest = RoundPence(e.CumulativeInterest)
		out.Schedule[i] = e
	}
	return out
}

func (m MortgageResult) Rounded() MortgageResult {
	out := MortgageResult{Baseline: m.Baseline.Rounded()}
	if m.WithOverpayment != nil {
		overpaid := m.WithOverpayment.Rounded()
		out.WithOverpayment = &overpaid
	}
	if m.Savings != nil {
		savings := *m.Savings
		savings.InterestSaved = RoundPence(savings.InterestSaved)
		out.Savings = &savings
	}
	return out
}

func roundGrowth(points []GrowthPoint) []GrowthPoint {
	out := make([]GrowthPoint, len(points))
	for i, p := range points {
		p.Balance = RoundPence(p.Balance)
		p.Contributions = RoundPence(p.Contributions)
		p.Growth = RoundPence(p.Growth)
		out[i] = p
	}
	return out
}

func (s GrowthSummary) Rounded() GrowthSummary {
	return GrowthSummary{
		FinalBalance:       RoundPence(s.FinalBalance),
		TotalContributions: RoundPence(s.TotalContributions),
		InterestEarned:     RoundPence(s.InterestEarned),
		EffectiveReturn:    RoundPence(s.EffectiveReturn),
		GrowthMultiple:     roundPlaces(s.GrowthMultiple, 4),
	}
}

func (s SimpleInterestResult) Rounded() SimpleInterestResult {
	return SimpleInterestResult{Interest: RoundPence(s.Interest), FinalAmount: RoundPence(s.FinalAmount)}
}
