package main

// StampDutyComparison is the SDLT on one price under every buyer category
type StampDutyComparison struct {
	Standard             float64 `json:"standard"`
	FirstTimeBuyer       float64 `json:"first_time_buyer"` // Equals Standard when the price is above the relief ceiling
	AdditionalProperty   float64 `json:"additional_property"`
	FirstTimeBuyerSaving float64 `json:"first_time_buyer_saving"`
}

// SelectStampDutyBands picks the ladder for a purchase. First-time buyer relief
// only applies up to the ceiling; above it a first-time buyer pays standard rates.
func SelectStampDutyBands(price float64, buyer BuyerCategory, sd StampDutyConfig) []TaxBand {
	switch {
	case buyer == FirstTimeBuyer && price <= sd.FirstTimeBuyerCeiling:
		return sd.FirstTimeBuyer
	case buyer == AdditionalProperty:
		return sd.AdditionalProperty
	default:
		return sd.Standard
	}
}

// CalculateStampDuty returns the SDLT and per-band breakdown for the buyer's ladder.
// Use ComputeBandedLevy directly to price against a specific ladder.
func CalculateStampDuty(price float64, buyer BuyerCategory, ty *TaxYearConfig) BandedLevy {
	return ComputeBandedLevy(price, SelectStampDutyBands(price, buyer, ty.StampDuty))
}

// CompareStampDuty prices the purchase under all three ladders
func CompareStampDuty(price float64, ty *TaxYearConfig) StampDutyComparison {
	sd := ty.StampDuty
	c := StampDutyComparison{
		Standard:           ComputeBandedLevy(price, sd.Standard).Total,
		AdditionalProperty: ComputeBandedLevy(price, sd.AdditionalProperty).Total,
	}
	c.FirstTimeBuyer = ComputeBandedLevy(price, SelectStampDutyBands(price, FirstTimeBuyer, sd)).Total
	if c.Standard > c.FirstTimeBuyer {
		c.FirstTimeBuyerSaving = c.Standard - c.FirstTimeBuyer
	}
	return c
}
