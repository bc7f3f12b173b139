package main

import (
	"math"
)

// ComputeBandedLevy runs an amount through a progressive ladder and returns the
// total charged plus one breakdown entry per band the amount reaches.
// Zero-rate bands that are touched still appear in the breakdown.
// Bands must be contiguous and ascending; that is checked by Config.Validate,
// not here.
func ComputeBandedLevy(amount float64, bands []TaxBand) BandedLevy {
	var levy BandedLevy
	if amount <= 0 {
		return levy
	}

	for _, band := range bands {
		if amount <= band.Lower {
			break
		}

		// An amount equal to band.Upper fills this band and leaves nothing for the next
		amountInBand := math.Min(amount, band.Upper) - band.Lower
		leviedInBand := amountInBand * band.Rate
		levy.Total += leviedInBand

		levy.Breakdown = append(levy.Breakdown, BandBreakdownEntry{
			Name:         band.Name,
			Lower:        band.Lower,
			Upper:        band.Upper,
			Rate:         band.Rate,
			AmountInBand: amountInBand,
			LeviedInBand: leviedInBand,
		})
	}

	return levy
}

// MarginalRate returns the rate charged on the next pound above amount
func MarginalRate(amount float64, bands []TaxBand) float64 {
	for _, band := range bands {
		if amount >= band.Lower && amount < band.Upper {
			return band.Rate
		}
	}
	// If above all bands, return the highest rate
	if len(bands) > 0 {
		return bands[len(bands)-1].Rate
	}
	return 0
}

// ApplyPersonalAllowanceTaper adjusts a ladder for the reduced Personal Allowance
// on incomes over the taper threshold. The input slice is never modified.
func ApplyPersonalAllowanceTaper(bands []TaxBand, income float64, taper TaperConfig) []TaxBand {
	if !taper.Enabled || income <= taper.Threshold {
		return bands
	}

	reduction := (income - taper.Threshold) * taper.Rate
	adjusted := make([]TaxBand, len(bands))
	copy(adjusted, bands)

	for i, band := range adjusted {
		// The allowance is the zero-rate band starting at 0
		if band.Lower != 0 || band.Rate != 0 {
			continue
		}
		reducedAllowance := math.Max(0, band.Upper-reduction)
		adjusted[i].Upper = reducedAllowance
		if i+1 < len(adjusted) {
			adjusted[i+1].Lower = reducedAllowance
		}
		break
	}

	return adjusted
}
