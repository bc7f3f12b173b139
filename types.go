package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownTaxYear         = errors.New("unknown tax year")
	ErrUnknownRegion          = errors.New("unknown region")
	ErrUnknownStudentLoanPlan = errors.New("unknown student loan plan")
	ErrUnknownBuyerCategory   = errors.New("unknown buyer category")
	ErrUnknownMaritalStatus   = errors.New("unknown marital status")
	ErrUnknownMortgageType    = errors.New("unknown mortgage type")
	ErrInvalidSchedule        = errors.New("invalid band schedule")
	ErrOutOfRange             = errors.New("value out of range")
)

// Region selects the income tax ladder. NI and student loans are UK-wide.
type Region int

const (
	RegionEngland  Region = iota // England, Wales and Northern Ireland
	RegionScotland               // Scottish rate ladder
)

func (r Region) String() string {
	switch r {
	case RegionEngland:
		return "england"
	case RegionScotland:
		return "scotland"
	default:
		return "unknown"
	}
}

// ParseRegion accepts the config keys plus a few common aliases
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "england", "wales", "ni", "northern-ireland", "ruk":
		return RegionEngland, nil
	case "scotland":
		return RegionScotland, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

// StudentLoanPlan identifies a repayment plan. PlanNone means no repayments.
type StudentLoanPlan string

const (
	PlanNone     StudentLoanPlan = "none"
	Plan1        StudentLoanPlan = "plan1"
	Plan2        StudentLoanPlan = "plan2"
	Plan4        StudentLoanPlan = "plan4"
	PlanPostgrad StudentLoanPlan = "postgrad"
)

func ParseStudentLoanPlan(s string) (StudentLoanPlan, error) {
	switch p := StudentLoanPlan(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PlanNone, nil
	case PlanNone, Plan1, Plan2, Plan4, PlanPostgrad:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStudentLoanPlan, s)
}

// BuyerCategory drives which SDLT ladder applies to a purchase
type BuyerCategory int

const (
	StandardBuyer      BuyerCategory = iota // Home mover, main residence
	FirstTimeBuyer                          // Relief up to the first-time buyer ceiling
	AdditionalProperty                      // Second homes and buy-to-let (surcharge)
)

func (b BuyerCategory) String() string {
	switch b {
	case StandardBuyer:
		return "standard"
	case FirstTimeBuyer:
		return "first-time"
	case AdditionalProperty:
		return "additional"
	default:
		return "unknown"
	}
}

// DisplayName returns the label used in console output
func (b BuyerCategory) DisplayName() string {
	switch b {
	case StandardBuyer:
		return "Standard Buyer"
	case FirstTimeBuyer:
		return "First-Time Buyer"
	case AdditionalProperty:
		return "Additional Property"
	default:
		return "Unknown"
	}
}

func ParseBuyerCategory(s string) (BuyerCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "mover":
		return StandardBuyer, nil
	case "first-time", "firsttime", "ftb":
		return FirstTimeBuyer, nil
	case "additional", "second-home", "btl":
		return AdditionalProperty, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBuyerCategory, s)
}

// MaritalStatus of the deceased for inheritance tax
type MaritalStatus int

const (
	Single  MaritalStatus = iota
	Married               // Married or civil partner, estate passes to the spouse
	Widowed               // Surviving spouse, inherits the unused allowances
)

func (m MaritalStatus) String() string {
	switch m {
	case Single:
		return "single"
	case Married:
		return "married"
	case Widowed:
		return "widowed"
	default:
		return "unknown"
	}
}

func ParseMaritalStatus(s string) (MaritalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "divorced":
		return Single, nil
	case "married", "civil-partner":
		return Married, nil
	case "widowed":
		return Widowed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaritalStatus, s)
}

// MortgageType represents how the loan is repaid
type MortgageType int

const (
	Repayment    MortgageType = iota // Capital and interest each month
	InterestOnly                     // Interest each month, capital at term end
)

func (m MortgageType) String() string {
	switch m {
	case Repayment:
		return "repayment"
	case InterestOnly:
		return "interest-only"
	default:
		return "unknown"
	}
}

func ParseMortgageType(s string) (MortgageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "repayment":
		return Repayment, nil
	case "interest-only", "interestonly":
		return InterestOnly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMortgageType, s)
}

// Text (un)marshalling lets the enums appear by name in JSON requests and results

func (r Region) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Region) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRegion(string(text))
	return err
}

func (p *StudentLoanPlan) UnmarshalText(text []byte) (err error) {
	*p, err = ParseStudentLoanPlan(string(text))
	return err
}

func (b BuyerCategory) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BuyerCategory) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBuyerCategory(string(text))
	return err
}

func (m MaritalStatus) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MaritalStatus) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMaritalStatus(string(text))
	return err
}

func (m MortgageType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MortgageType) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMortgageType(string(text))
	return err
}

// TaxBand is one rung of a progressive ladder. Upper is +Inf for the top band.
type TaxBand struct {
	Name  string  `yaml:"name,omitempty" json:"name,omitempty"`
	Lower float64 `yaml:"lower" json:"lower"`
	Upper float64 `yaml:"upper" json:"upper"`
	Rate  float64 `yaml:"rate" json:"rate"`
}

// BandBreakdownEntry records how much of an amount fell into a band and what it was charged
type BandBreakdownEntry struct {
	Name         string  `json:"name,omitempty"`
	Lower        float64 `json:"lower"`
	Upper        float64 `json:"upper"`
	Rate         float64 `json:"rate"`
	AmountInBand float64 `json:"amount_in_band"`
	LeviedInBand float64 `json:"levied_in_band"`
}

// BandedLevy is the result of running an amount through a ladder
type BandedLevy struct {
	Total     float64              `json:"total"`
	Breakdown []BandBreakdownEntry `json:"breakdown"`
}

// upperBound maps an unbounded band edge to nil, since JSON has no infinity
func upperBound(upper float64) *float64 {
	if math.IsInf(upper, 1) {
		return nil
	}
	return &upper
}

func (b TaxBand) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string   `json:"name,omitempty"`
		Lower float64  `json:"lower"`
		Upper *float64 `json:"upper"`
		Rate  float64  `json:"rate"`
	}{b.Name, b.Lower, upperBound(b.Upper), b.Rate})
}

func (e BandBreakdownEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name         string   `json:"name,omitempty"`
		Lower        float64  `json:"lower"`
		Upper        *float64 `json:"upper"`
		Rate         float64  `json:"rate"`
		AmountInBand float64  `json:"amount_in_band"`
		LeviedInBand float64  `json:"levied_in_band"`
	}{e.Name, e.Lower, upperBound(e.Upper), e.Rate, e.AmountInBand, e.LeviedInBand})
}
