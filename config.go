package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default-tax-years.yaml
var defaultTaxYearsYAML string

// StudentLoanPlanConfig holds the repayment threshold and rate for one plan
type StudentLoanPlanConfig struct {
	Threshold float64 `yaml:"threshold" json:"threshold"` // Annual salary above which repayments start
	Rate      float64 `yaml:"rate" json:"rate"`           // Fraction of salary above threshold (e.g., 0.09 = 9%)
}

// StampDutyConfig holds the SDLT ladders for each buyer category
type StampDutyConfig struct {
	Standard              []TaxBand `yaml:"standard" json:"standard"`
	FirstTimeBuyer        []TaxBand `yaml:"first_time_buyer" json:"first_time_buyer"`
	AdditionalProperty    []TaxBand `yaml:"additional_property" json:"additional_property"`
	FirstTimeBuyerCeiling float64   `yaml:"first_time_buyer_ceiling" json:"first_time_buyer_ceiling"` // Above this price first-time buyer relief is lost
}

// GiftTaperBand gives the relief on gift tax for gifts made yearsMin..yearsMax ago
type GiftTaperBand struct {
	YearsMin float64 `yaml:"years_min" json:"years_min"`
	YearsMax float64 `yaml:"years_max" json:"years_max"`
	Relief   float64 `yaml:"relief" json:"relief"`
}

func (g GiftTaperBand) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		YearsMin float64  `json:"years_min"`
		YearsMax *float64 `json:"years_max"`
		Relief   float64  `json:"relief"`
	}{g.YearsMin, upperBound(g.YearsMax), g.Relief})
}

// InheritanceTaxConfig holds the IHT allowances and rates
type InheritanceTaxConfig struct {
	NilRateBand             float64         `yaml:"nil_rate_band" json:"nil_rate_band"`
	ResidenceNilRateBand    float64         `yaml:"residence_nil_rate_band" json:"residence_nil_rate_band"`
	ResidenceTaperThreshold float64         `yaml:"residence_taper_threshold" json:"residence_taper_threshold"` // RNRB reduces by £1 per £2 of net estate above this
	StandardRate            float64         `yaml:"standard_rate" json:"standard_rate"`
	CharityRate             float64         `yaml:"charity_rate" json:"charity_rate"`
	CharityThreshold        float64         `yaml:"charity_threshold" json:"charity_threshold"` // Share of net estate left to charity for the reduced rate
	GiftTaperRelief         []GiftTaperBand `yaml:"gift_taper_relief" json:"gift_taper_relief"`
}

// TaperConfig controls Personal Allowance tapering for high incomes
type TaperConfig struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Threshold float64 `yaml:"threshold" json:"threshold"` // Income above which the allowance reduces (£100,000)
	Rate      float64 `yaml:"rate" json:"rate"`           // Allowance lost per £1 over threshold (0.5)
}

// TaxYearConfig is the full set of schedules for one tax year
type TaxYearConfig struct {
	Label                  string                           `yaml:"label,omitempty" json:"label,omitempty"`
	IncomeTax              map[string][]TaxBand             `yaml:"income_tax" json:"income_tax"` // Keyed by region
	NationalInsurance      []TaxBand                        `yaml:"national_insurance" json:"national_insurance"`
	StudentLoans           map[string]StudentLoanPlanConfig `yaml:"student_loans" json:"student_loans"`
	StampDuty              StampDutyConfig                  `yaml:"stamp_duty" json:"stamp_duty"`
	InheritanceTax         InheritanceTaxConfig             `yaml:"inheritance_tax" json:"inheritance_tax"`
	PersonalAllowanceTaper TaperConfig                      `yaml:"personal_allowance_taper" json:"personal_allowance_taper"`
}

// IncomeTaxBands returns the ladder for a region
func (ty *TaxYearConfig) IncomeTaxBands(region Region) ([]TaxBand, error) {
	bands, ok := ty.IncomeTax[region.String()]
	if !ok || len(bands) == 0 {
		return nil, fmt.Errorf("%w: no income tax bands for %s", ErrUnknownRegion, region)
	}
	return bands, nil
}

// StudentLoan returns the plan settings. PlanNone yields a zero plan.
func (ty *TaxYearConfig) StudentLoan(plan StudentLoanPlan) (StudentLoanPlanConfig, error) {
	if plan == PlanNone || plan == "" {
		return StudentLoanPlanConfig{}, nil
	}
	p, ok := ty.StudentLoans[string(plan)]
	if !ok {
		return StudentLoanPlanConfig{}, fmt.Errorf("%w: %s", ErrUnknownStudentLoanPlan, plan)
	}
	return p, nil
}

// Config holds every configured tax year, keyed by its start-year label (e.g. "2025/26")
type Config struct {
	DefaultTaxYear string                   `yaml:"default_tax_year" json:"default_tax_year"`
	TaxYears       map[string]TaxYearConfig `yaml:"tax_years" json:"tax_years"`
}

// TaxYear returns the schedules for id, or the default year when id is empty.
// A bare start year ("2025") is read as that tax year ("2025/26").
func (c *Config) TaxYear(id string) (*TaxYearConfig, error) {
	if id == "" {
		id = c.DefaultTaxYear
	}
	if startYear, err := strconv.Atoi(id); err == nil {
		id = TaxYearLabel(startYear)
	}
	ty, ok := c.TaxYears[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaxYear, id)
	}
	if ty.Label == "" {
		ty.Label = id
	}
	return &ty, nil
}

// TaxYearIDs returns the configured tax years in ascending order
func (c *Config) TaxYearIDs() []string {
	ids := make([]string, 0, len(c.TaxYears))
	for id := range c.TaxYears {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks that every ladder starts at 0, is contiguous and ascending,
// ends unbounded and has rates within [0,1].
func (c *Config) Validate() error {
	if len(c.TaxYears) == 0 {
		return fmt.Errorf("%w: no tax years configured", ErrInvalidSchedule)
	}
	if _, ok := c.TaxYears[c.DefaultTaxYear]; !ok {
		return fmt.Errorf("%w: default %q", ErrUnknownTaxYear, c.DefaultTaxYear)
	}

	for _, id := range c.TaxYearIDs() {
		ty := c.TaxYears[id]
		if _, ok := ty.IncomeTax[RegionEngland.String()]; !ok {
			return fmt.Errorf("%s: %w: missing %s income tax bands", id, ErrInvalidSchedule, RegionEngland)
		}
		ladders := map[string][]TaxBand{
			"national_insurance":             ty.NationalInsurance,
			"stamp_duty.standard":            ty.StampDuty.Standard,
			"stamp_duty.additional_property": ty.StampDuty.AdditionalProperty,
		}
		for region, bands := range ty.IncomeTax {
			ladders["income_tax."+region] = bands
		}
		for name, bands := range ladders {
			if err := validateBands(bands, true); err != nil {
				return fmt.Errorf("%s %s: %w", id, name, err)
			}
		}
		// The first-time buyer ladder stops at the relief ceiling
		if err := validateBands(ty.StampDuty.FirstTimeBuyer, false); err != nil {
			return fmt.Errorf("%s stamp_duty.first_time_buyer: %w", id, err)
		}
	}
	return nil
}

func validateBands(bands []TaxBand, unbounded bool) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidSchedule)
	}
	if bands[0].Lower != 0 {
		return fmt.Errorf("%w: first band starts at %.0f", ErrInvalidSchedule, bands[0].Lower)
	}
	for i, band := range bands {
		if band.Rate < 0 || band.Rate > 1 {
			return fmt.Errorf("%w: band %d rate %.4f outside [0,1]", ErrInvalidSchedule, i, band.Rate)
		}
		if band.Upper <= band.Lower {
			return fmt.Errorf("%w: band %d upper %.0f not above lower %.0f", ErrInvalidSchedule, i, band.Upper, band.Lower)
		}
		if i > 0 && band.Lower != bands[i-1].Upper {
			return fmt.Errorf("%w: gap or overlap between bands %d and %d", ErrInvalidSchedule, i-1, i)
		}
	}
	if unbounded && !math.IsInf(bands[len(bands)-1].Upper, 1) {
		return fmt.Errorf("%w: top band must be unbounded (.inf)", ErrInvalidSchedule)
	}
	return nil
}

// LoadConfig loads tax year configuration from a YAML file.
// Percentages such as "20%" are accepted as well as decimals.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseConfig(string(data))
}

// LoadDefaultConfig loads the schedules compiled into the binary
func LoadDefaultConfig() (*Config, error) {
	return parseConfig(defaultTaxYearsYAML)
}

func parseConfig(content string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(preprocessPercentages(content)), &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes configuration to a YAML file so it can be edited for a new tax year
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# UK Finance Calculators - Tax Year Configuration
#
# Each entry under tax_years holds the full set of schedules for one tax year.
# Add a new year by copying the latest block and editing the thresholds.
#
#   Rates:  0.20 = 20% (or write 20%)
#   Money:  values are in GBP
#   Top band of each ladder uses upper: .inf
#
`)
	return os.WriteFile(filename, append(header, data...), 0644)
}

// preprocessPercentages converts percentage values like "5%" to decimal "0.05"
func preprocessPercentages(content string) string {
	re := regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}

// TaxYearLabel formats a UK tax year from its starting calendar year (2025 -> "2025/26")
func TaxYearLabel(startYear int) string {
	return fmt.Sprintf("%d/%02d", startYear, (startYear+1)%100)
}

// ResolveConfig loads path when set, else the TAX_CONFIG file when set, else the embedded defaults
func ResolveConfig(path string) (*Config, string, error) {
	if path == "" {
		path = getEnv("TAX_CONFIG", "")
	}
	if path == "" {
		config, err := LoadDefaultConfig()
		return config, "embedded", err
	}
	config, err := LoadConfig(path)
	return config, path, err
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
