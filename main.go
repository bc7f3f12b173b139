package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const usageText = `UK Finance Calculators

Income tax, National Insurance, stamp duty, inheritance tax, mortgage and
savings calculators driven by versioned tax-year schedules.

Usage:
  %[1]s <command> [options]

Commands:
  income-tax        Income tax, NI, student loan and take-home pay
  stamp-duty        Stamp Duty Land Tax on a purchase
  inheritance-tax   Inheritance tax on an estate
  mortgage          Repayment or interest-only schedule with overpayments
  compound-interest Savings growth with regular contributions
  simple-interest   Interest on a fixed principal
  interactive       Answer questions instead of passing flags
  tax-years         List configured tax years (or export them with -write)
  serve             Run the JSON API
  version           Print the version

Run '%[1]s <command> -h' for the options of a command.

Examples:
  %[1]s income-tax -salary 50000 -pension 200 -student-loan plan2
  %[1]s stamp-duty -price 450000 -buyer first-time -tax-year 2025/26
  %[1]s mortgage -principal 320000 -rate 5.5 -term 25 -overpayment 200
  %[1]s mortgage -price 400000 -deposit 80000 -rate 4.5 -pdf mortgage.pdf
  %[1]s serve -addr :8080

Environment:
  TAX_CONFIG   tax-year schedule file used when -config is not given
  LOG_LEVEL    debug, info, warn or error (default info)
  LOG_FORMAT   text or json (default text)
`

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	commands := map[string]func([]string) error{
		"income-tax":        runIncomeTax,
		"stamp-duty":        runStampDuty,
		"inheritance-tax":   runInheritanceTax,
		"mortgage":          runMortgage,
		"compound-interest": runCompoundInterest,
		"simple-interest":   runSimpleInterest,
		"interactive":       runInteractive,
		"tax-years":         runTaxYears,
		"serve":             runServe,
	}

	switch cmd := os.Args[1]; cmd {
	case "version", "-version", "--version":
		fmt.Println(version)
	case "help", "-h", "-help", "--help":
		usage()
	default:
		run, ok := commands[cmd]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", cmd)
			usage()
			os.Exit(2)
		}
		if err := run(os.Args[2:]); err != nil {
			fail(err)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, usageText, os.Args[0])
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// commonOptions are accepted by every calculator command
type commonOptions struct {
	configFile string
	taxYear    string
	asJSON     bool
}

func addCommonFlags(fs *flag.FlagSet) *commonOptions {
	opts := &commonOptions{}
	fs.StringVar(&opts.configFile, "config", "", "Path to tax-year YAML file (default: TAX_CONFIG or built-in schedules)")
	fs.StringVar(&opts.taxYear, "tax-year", "", "Tax year to use, e.g. 2025/26 (default: the config's default year)")
	fs.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	return opts
}

// load resolves the config and the selected tax year
func (o *commonOptions) load() (*Config, *TaxYearConfig, error) {
	config, _, err := ResolveConfig(o.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	ty, err := config.TaxYear(o.taxYear)
	if err != nil {
		return nil, nil, err
	}
	return config, ty, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runIncomeTax(args []string) error {
	fs := flag.NewFlagSet("income-tax", flag.ExitOnError)
	opts := addCommonFlags(fs)
	salary := fs.Float64("salary", 0, "Annual gross salary (£)")
	other := fs.Float64("other-income", 0, "Other taxable income per year (£)")
	pension := fs.Float64("pension", 0, "Monthly pension contribution (£)")
	region := fs.String("region", "england", "Tax region: england or scotland")
	plan := fs.String("student-loan", "none", "Student loan plan: none, plan1, plan2, plan4, postgrad")
	fs.Parse(args)

	in := IncomeTaxInput{GrossSalary: *salary, OtherIncome: *other, MonthlyPensionContribution: *pension}
	var err error
	if in.Region, err = ParseRegion(*region); err != nil {
		return err
	}
	if in.StudentLoanPlan, err = ParseStudentLoanPlan(*plan); err != nil {
		return err
	}
	nonNegative(&in.GrossSalary, &in.OtherIncome, &in.MonthlyPensionContribution)

	_, ty, err := opts.load()
	if err != nil {
		return err
	}
	result, err := CalculateIncomeTax(in, ty)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return printJSON(result.Rounded())
	}
	PrintIncomeTax(in, result, ty.Label)
	return nil
}

func runStampDuty(args []string) error {
	fs := flag.NewFlagSet("stamp-duty", flag.ExitOnError)
	opts := addCommonFlags(fs)
	price := fs.Float64("price", 0, "Purchase price (£)")
	buyerFlag := fs.String("buyer", "standard", "Buyer: standard, first-time or additional")
	fs.Parse(args)

	buyer, err := ParseBuyerCategory(*buyerFlag)
	if err != nil {
		return err
	}
	nonNegative(price)

	_, ty, err := opts.load()
	if err != nil {
		return err
	}
	levy := CalculateStampDuty(*price, buyer, ty)
	cmp := CompareStampDuty(*price, ty)

	if opts.asJSON {
		return printJSON(APIStampDutyResult{BandedLevy: levy.Rounded(), Buyer: buyer, Comparison: cmp.Rounded()})
	}
	PrintStampDuty(*price, buyer, levy, cmp, ty.Label)
	return nil
}

func runInheritanceTax(args []string) error {
	fs := flag.NewFlagSet("inheritance-tax", flag.ExitOnError)
	opts := addCommonFlags(fs)
	var in InheritanceTaxInput
	fs.Float64Var(&in.Property, "property", 0, "Value of property (£)")
	fs.Float64Var(&in.Savings, "savings", 0, "Cash savings (£)")
	fs.Float64Var(&in.Investments, "investments", 0, "Investments (£)")
	fs.Float64Var(&in.OtherAssets, "other-assets", 0, "Other assets (£)")
	fs.Float64Var(&in.Liabilities, "liabilities", 0, "Debts and liabilities (£)")
	fs.Float64Var(&in.GiftsInLast7Years, "gifts", 0, "Gifts made in the last 7 years (£)")
	fs.Float64Var(&in.CharitableDonation, "charity", 0, "Amount left to charity (£)")
	fs.BoolVar(&in.PassResidenceToDescendants, "residence-to-descendants", false, "Home passes to children or grandchildren")
	marital := fs.String("marital-status", "single", "single, married or widowed")
	fs.Parse(args)

	var err error
	if in.MaritalStatus, err = ParseMaritalStatus(*marital); err != nil {
		return err
	}
	nonNegative(&in.Property, &in.Savings, &in.Investments, &in.OtherAssets,
		&in.Liabilities, &in.GiftsInLast7Years, &in.CharitableDonation)

	_, ty, err := opts.load()
	if err != nil {
		return err
	}
	result := CalculateInheritanceTax(in, ty.InheritanceTax)

	if opts.asJSON {
		return printJSON(result.Rounded())
	}
	PrintInheritanceTax(in, result, ty.Label)
	return nil
}

func runMortgage(args []string) error {
	fs := flag.NewFlagSet("mortgage", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	var in MortgageInput
	fs.Float64Var(&in.Principal, "principal", 0, "Loan amount (£); or use -price and -deposit")
	price := fs.Float64("price", 0, "Property price (£), used with -deposit when -principal is not set")
	deposit := fs.Float64("deposit", 0, "Deposit (£)")
	fs.Float64Var(&in.AnnualRatePercent, "rate", 0, "Annual interest rate in percent (e.g. 5.5)")
	fs.IntVar(&in.TermYears, "term", 25, "Term in years")
	fs.Float64Var(&in.MonthlyOverpayment, "overpayment", 0, "Monthly overpayment (£)")
	fs.Float64Var(&in.LumpSum, "lump-sum", 0, "One-off overpayment (£)")
	fs.IntVar(&in.LumpSumYear, "lump-sum-year", 1, "Year in which the lump sum is paid (paid with the year's last payment)")
	mortgageType := fs.String("type", "repayment", "repayment or interest-only")
	schedule := fs.Bool("schedule", false, "Print the year-by-year schedule")
	pdfFile := fs.String("pdf", "", "Also write a PDF report to this file")
	fs.Parse(args)

	var err error
	if in.Type, err = ParseMortgageType(*mortgageType); err != nil {
		return err
	}
	nonNegative(&in.Principal, price, deposit, &in.AnnualRatePercent, &in.MonthlyOverpayment, &in.LumpSum)
	if err := in.Validate(); err != nil {
		return err
	}

	if in.Principal == 0 && *price > 0 {
		var depositPct, ltv float64
		in.Principal, depositPct, ltv = LoanToValue(*price, *deposit)
		if !*asJSON {
			fmt.Printf("Deposit %.1f%%, loan to value %.1f%%\n\n", depositPct, ltv)
		}
	}

	result := CalculateMortgage(in)
	if *pdfFile != "" {
		data, err := GenerateMortgagePDFReport(in, result)
		if err != nil {
			return fmt.Errorf("generating PDF: %w", err)
		}
		if err := os.WriteFile(*pdfFile, data, 0644); err != nil {
			return err
		}
		if !*asJSON {
			fmt.Printf("PDF report written to %s\n\n", *pdfFile)
		}
	}
	if *asJSON {
		return printJSON(result.Rounded())
	}
	PrintMortgage(in, result, *schedule)
	return nil
}

func runCompoundInterest(args []string) error {
	fs := flag.NewFlagSet("compound-interest", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	var in GrowthInput
	fs.Float64Var(&in.InitialPrincipal, "principal", 0, "Starting amount (£)")
	fs.Float64Var(&in.PeriodicContribution, "contribution", 0, "Contribution per compounding period (£)")
	fs.Float64Var(&in.AnnualRatePercent, "rate", 0, "Annual interest rate in percent")
	fs.IntVar(&in.Years, "years", 10, "Number of years")
	fs.IntVar(&in.PeriodsPerYear, "periods", 12, "Compounding periods per year")
	fs.Parse(args)

	nonNegative(&in.InitialPrincipal, &in.PeriodicContribution, &in.AnnualRatePercent)
	if err := in.Validate(); err != nil {
		return err
	}

	points := ProjectGrowth(in)
	summary := SummariseGrowth(points)
	if *asJSON {
		return printJSON(APIGrowthResult{Points: roundGrowth(points), Summary: summary.Rounded()})
	}
	PrintGrowth(in, points, summary)
	return nil
}

func runSimpleInterest(args []string) error {
	fs := flag.NewFlagSet("simple-interest", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	principal := fs.Float64("principal", 0, "Principal (£)")
	rate := fs.Float64("rate", 0, "Annual interest rate in percent")
	years := fs.Float64("years", 1, "Number of years")
	fs.Parse(args)

	nonNegative(principal, rate, years)
	result := CalculateSimpleInterest(*principal, *rate, *years)
	if *asJSON {
		return printJSON(result.Rounded())
	}
	PrintSimpleInterest(*principal, *rate, *years, result)
	return nil
}

func runInteractive(args []string) error {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	opts := addCommonFlags(fs)
	fs.Parse(args)

	_, ty, err := opts.load()
	if err != nil {
		return err
	}

	// Keep stdout clean for -json
	prompts := os.Stdout
	if opts.asJSON {
		prompts = os.Stderr
	}
	session := NewInteractiveSession(os.Stdin, prompts)
	var result any
	switch session.ChooseCalculator() {
	case CalcIncomeTax:
		in := session.PromptIncomeTax()
		r, err := CalculateIncomeTax(in, ty)
		if err != nil {
			return err
		}
		result = r.Rounded()
		if !opts.asJSON {
			fmt.Println()
			PrintIncomeTax(in, r, ty.Label)
		}
	case CalcStampDuty:
		price, buyer := session.PromptStampDuty()
		levy, cmp := CalculateStampDuty(price, buyer, ty), CompareStampDuty(price, ty)
		result = APIStampDutyResult{BandedLevy: levy.Rounded(), Buyer: buyer, Comparison: cmp.Rounded()}
		if !opts.asJSON {
			fmt.Println()
			PrintStampDuty(price, buyer, levy, cmp, ty.Label)
		}
	case CalcInheritanceTax:
		in := session.PromptInheritanceTax()
		r := CalculateInheritanceTax(in, ty.InheritanceTax)
		result = r.Rounded()
		if !opts.asJSON {
			fmt.Println()
			PrintInheritanceTax(in, r, ty.Label)
		}
	case CalcMortgage:
		in := session.PromptMortgage()
		r := CalculateMortgage(in)
		result = r.Rounded()
		if !opts.asJSON {
			fmt.Println()
			PrintMortgage(in, r, session.promptYesNo("Show the yearly schedule?", false))
		}
	case CalcCompound:
		in := session.PromptGrowth()
		points := ProjectGrowth(in)
		summary := SummariseGrowth(points)
		result = APIGrowthResult{Points: roundGrowth(points), Summary: summary.Rounded()}
		if !opts.asJSON {
			fmt.Println()
			PrintGrowth(in, points, summary)
		}
	case CalcSimple:
		principal, rate, years := session.PromptSimpleInterest()
		r := CalculateSimpleInterest(principal, rate, years)
		result = r.Rounded()
		if !opts.asJSON {
			fmt.Println()
			PrintSimpleInterest(principal, rate, years, r)
		}
	}

	if opts.asJSON {
		return printJSON(result)
	}
	return nil
}

func runTaxYears(args []string) error {
	fs := flag.NewFlagSet("tax-years", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to tax-year YAML file")
	asJSON := fs.Bool("json", false, "Print the schedules as JSON")
	write := fs.String("write", "", "Write the loaded schedules to this YAML file for editing")
	fs.Parse(args)

	config, source, err := ResolveConfig(*configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if *write != "" {
		if err := SaveConfig(config, *write); err != nil {
			return err
		}
		fmt.Printf("Tax year schedules written to %s\n", *write)
		return nil
	}
	if *asJSON {
		return printJSON(config)
	}
	PrintTaxYears(config, source)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to tax-year YAML file")
	addr := fs.String("addr", getEnv("ADDR", ":8080"), "Listen address")
	fs.Parse(args)

	logger := LoggerFromEnv()
	config, source, err := ResolveConfig(*configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.WithField("source", source).WithField("tax_years", config.TaxYearIDs()).Info("Loaded tax year schedules")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewWebServer(config, *addr, logger).Serve(ctx)
}
