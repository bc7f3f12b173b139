package main

import "math"

// InheritanceTaxInput describes an estate at death (GBP)
type InheritanceTaxInput struct {
	Property                   float64       `json:"property"`
	Savings                    float64       `json:"savings"`
	Investments                float64       `json:"investments"`
	OtherAssets                float64       `json:"other_assets"`
	Liabilities                float64       `json:"liabilities"`
	MaritalStatus              MaritalStatus `json:"marital_status"`
	PassResidenceToDescendants bool          `json:"pass_residence_to_descendants"`
	GiftsInLast7Years          float64       `json:"gifts_in_last_7_years"`
	CharitableDonation         float64       `json:"charitable_donation"`
}

// InheritanceTaxResult carries every intermediate figure of the estate calculation.
// TaxDue = TaxableAmount * Rate and
// BeneficiariesReceive = NetEstate - TaxDue - CharitableDeduction (floored at 0).
type InheritanceTaxResult struct {
	GrossEstate          float64 `json:"gross_estate"`
	NetEstate            float64 `json:"net_estate"`
	TaxableEstate        float64 `json:"taxable_estate"`
	NilRateBand          float64 `json:"nil_rate_band"`
	ResidenceNilRateBand float64 `json:"residence_nil_rate_band"`
	TotalNilRateBand     float64 `json:"total_nil_rate_band"`
	SpouseExemption      float64 `json:"spouse_exemption"`
	CharitableDeduction  float64 `json:"charitable_deduction"`
	TaxableAmount        float64 `json:"taxable_amount"`
	Rate                 float64 `json:"rate"`
	CharityRateApplied   bool    `json:"charity_rate_applied"`
	TaxDue               float64 `json:"tax_due"`
	BeneficiariesReceive float64 `json:"beneficiaries_receive"`
	EffectiveRate        float64 `json:"effective_rate"` // TaxDue as % of net estate
	MonthlySaving        float64 `json:"monthly_saving"` // Saving needed over 10 years to cover TaxDue

	// Failed gifts are reported alongside the estate bill, not added to TaxDue
	GiftsAboveNilRateBand float64 `json:"gifts_above_nil_rate_band"`
	GiftTax               float64 `json:"gift_tax"`

	Scenarios InheritanceTaxScenarios `json:"scenarios"`
}

// InheritanceTaxScenarios is the bill on the same net estate under three sets of
// allowances, at the standard rate with no taper, charity or spouse exemption
type InheritanceTaxScenarios struct {
	Single               float64 `json:"single"`                 // Nil-rate band only
	SingleWithResidence  float64 `json:"single_with_residence"`  // Plus the residence band
	WidowedWithResidence float64 `json:"widowed_with_residence"` // Both bands doubled
}

// CalculateInheritanceTax works through the estate in order: net estate,
// charitable deduction, nil-rate bands (doubled for a widow or widower, residence
// band tapered on large estates), spouse exemption, and the rate.
//
// A married estate is treated as a first death: everything passes to the
// spouse and no tax is due now.
func CalculateInheritanceTax(in InheritanceTaxInput, cfg InheritanceTaxConfig) InheritanceTaxResult {
	var r InheritanceTaxResult

	r.GrossEstate = in.Property + in.Savings + in.Investments + in.OtherAssets
	r.NetEstate = math.Max(0, r.GrossEstate-in.Liabilities)

	r.CharitableDeduction = in.CharitableDonation
	r.TaxableEstate = math.Max(0, r.NetEstate-r.CharitableDeduction)

	r.NilRateBand = cfg.NilRateBand
	if in.MaritalStatus == Widowed {
		r.NilRateBand *= 2
	}
	r.ResidenceNilRateBand = residenceNilRateBand(in, r.NetEstate, cfg)
	r.TotalNilRateBand = r.NilRateBand + r.ResidenceNilRateBand

	if in.MaritalStatus == Married {
		r.SpouseExemption = r.TaxableEstate
	}
	r.TaxableAmount = math.Max(0, r.TaxableEstate-r.SpouseExemption-r.TotalNilRateBand)

	r.Rate = cfg.StandardRate
	if in.CharitableDonation > 0 && in.CharitableDonation >= r.NetEstate*cfg.CharityThreshold {
		r.Rate = cfg.CharityRate
		r.CharityRateApplied = true
	}

	r.TaxDue = r.TaxableAmount * r.Rate
	r.BeneficiariesReceive = math.Max(0, r.NetEstate-r.TaxDue-r.CharitableDeduction)

	if r.NetEstate > 0 {
		r.EffectiveRate = r.TaxDue / r.NetEstate * 100
	}
	r.MonthlySaving = r.TaxDue / 120

	// Gifts use up the (single) nil-rate band first
	if in.GiftsInLast7Years > 0 {
		r.GiftsAboveNilRateBand = math.Max(0, in.GiftsInLast7Years-cfg.NilRateBand)
		r.GiftTax = r.GiftsAboveNilRateBand * cfg.StandardRate
	}

	r.Scenarios = CompareInheritanceTax(r.NetEstate, cfg)
	return r
}

// CompareInheritanceTax shows what the allowances are worth on a net estate
func CompareInheritanceTax(netEstate float64, cfg InheritanceTaxConfig) InheritanceTaxScenarios {
	taxAbove := func(allowance float64) float64 {
		return math.Max(0, netEstate-allowance) * cfg.StandardRate
	}
	return InheritanceTaxScenarios{
		Single:               taxAbove(cfg.NilRateBand),
		SingleWithResidence:  taxAbove(cfg.NilRateBand + cfg.ResidenceNilRateBand),
		WidowedWithResidence: taxAbove(2 * (cfg.NilRateBand + cfg.ResidenceNilRateBand)),
	}
}

// residenceNilRateBand applies when a home with value passes to direct
// descendants. It is doubled for a widow or widower and reduced by £1 for every
// £2 the net estate exceeds the taper threshold.
func residenceNilRateBand(in InheritanceTaxInput, netEstate float64, cfg InheritanceTaxConfig) float64 {
	if !in.PassResidenceToDescendants || in.Property <= 0 {
		return 0
	}

	rnrb := cfg.ResidenceNilRateBand
	if in.MaritalStatus == Widowed {
		rnrb *= 2
	}
	if netEstate > cfg.ResidenceTaperThreshold {
		excess := netEstate - cfg.ResidenceTaperThreshold
		rnrb = math.Max(0, rnrb-math.Min(rnrb, excess/2))
	}
	return rnrb
}

// GiftTaperRelief returns the fraction of gift tax relieved for a gift made
// yearsElapsed years before death. Not applied to GiftTax.
func GiftTaperRelief(yearsElapsed float64, cfg InheritanceTaxConfig) float64 {
	for _, band := range cfg.GiftTaperRelief {
		if yearsElapsed >= band.YearsMin && yearsElapsed < band.YearsMax {
			return band.Relief
		}
	}
	return 0
}
