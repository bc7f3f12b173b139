package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// WebServer serves the calculators as a JSON API
type WebServer struct {
	config *Config
	addr   string
	logger *logrus.Logger
	now    func() time.Time // Start month for payoff dates
}

// NewWebServer creates a new web server instance
func NewWebServer(config *Config, addr string, logger *logrus.Logger) *WebServer {
	return &WebServer{
		config: config,
		addr:   addr,
		logger: logger,
		now:    time.Now,
	}
}

// APIResponse wraps every calculator response
type APIResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	TaxYear string `json:"tax_year,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// APIIncomeTaxRequest is the body of POST /api/income-tax
type APIIncomeTaxRequest struct {
	TaxYear string `json:"tax_year"`
	IncomeTaxInput
}

// APIStampDutyRequest is the body of POST /api/stamp-duty
type APIStampDutyRequest struct {
	TaxYear string        `json:"tax_year"`
	Price   float64       `json:"price"`
	Buyer   BuyerCategory `json:"buyer"`
}

// APIStampDutyResult pairs the buyer's bill with the other categories
type APIStampDutyResult struct {
	BandedLevy
	Buyer      BuyerCategory       `json:"buyer"`
	Comparison StampDutyComparison `json:"comparison"`
}

// APIInheritanceTaxRequest is the body of POST /api/inheritance-tax
type APIInheritanceTaxRequest struct {
	TaxYear string `json:"tax_year"`
	InheritanceTaxInput
}

// APIMortgageRequest is the body of POST /api/mortgage. Price and Deposit are
// optional; when Principal is 0 the loan is price minus deposit.
type APIMortgageRequest struct {
	Price   float64 `json:"price"`
	Deposit float64 `json:"deposit"`
	MortgageInput
}

// APIMortgageResult adds loan-to-value figures and payoff months ("Jan 2050")
// to the schedules
type APIMortgageResult struct {
	MortgageResult
	DepositPercent float64 `json:"deposit_percent,omitempty"`
	LoanToValue    float64 `json:"loan_to_value,omitempty"`
	PayoffDate     string  `json:"payoff_date,omitempty"`
	NewPayoffDate  string  `json:"new_payoff_date,omitempty"` // With overpayments
}

// APIGrowthResult is the projection and its summary
type APIGrowthResult struct {
	Points  []GrowthPoint `json:"points"`
	Summary GrowthSummary `json:"summary"`
}

// APISimpleInterestRequest is the body of POST /api/simple-interest
type APISimpleInterestRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Years             float64 `json:"years"`
}

// APITaxYearsResult lists the configured years
type APITaxYearsResult struct {
	Default  string                    `json:"default"`
	TaxYears []string                  `json:"tax_years"`
	Years    map[string]*TaxYearConfig `json:"years"`
}

// Router builds the API routes
func (ws *WebServer) Router() http.Handler {
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendJSONError(w, http.StatusNotFound, "not found")
	})

	r := mux.NewRouter()
	r.Use(ws.logRequests)
	r.MethodNotAllowedHandler = methodNotAllowed
	r.NotFoundHandler = notFound

	r.HandleFunc("/healthz", ws.handleHealth).Methods(http.MethodGet)

	// A subrouter answers its own mismatches
	api := r.PathPrefix("/api").Subrouter()
	api.MethodNotAllowedHandler = methodNotAllowed
	api.NotFoundHandler = notFound
	api.HandleFunc("/tax-years", ws.handleTaxYears).Methods(http.MethodGet)
	api.HandleFunc("/income-tax", ws.handleIncomeTax).Methods(http.MethodPost)
	api.HandleFunc("/stamp-duty", ws.handleStampDuty).Methods(http.MethodPost)
	api.HandleFunc("/inheritance-tax", ws.handleInheritanceTax).Methods(http.MethodPost)
	api.HandleFunc("/mortgage", ws.handleMortgage).Methods(http.MethodPost)
	api.HandleFunc("/mortgage/pdf", ws.handleMortgagePDF).Methods(http.MethodPost)
	api.HandleFunc("/compound-interest", ws.handleCompoundInterest).Methods(http.MethodPost)
	api.HandleFunc("/simple-interest", ws.handleSimpleInterest).Methods(http.MethodPost)

	return r
}

// Serve listens until ctx is cancelled, then shuts down gracefully
func (ws *WebServer) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:         ws.addr,
		Handler:      ws.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		ws.logger.WithField("addr", ws.addr).Info("Starting web server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	ws.logger.Info("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (ws *WebServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := ws.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
		if rec.status >= 400 {
			entry.Warn("request failed")
		} else {
			entry.Info("request")
		}
	})
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTaxYears returns the configured schedules
func (ws *WebServer) handleTaxYears(w http.ResponseWriter, r *http.Request) {
	result := APITaxYearsResult{
		Default:  ws.config.DefaultTaxYear,
		TaxYears: ws.config.TaxYearIDs(),
		Years:    make(map[string]*TaxYearConfig),
	}
	for _, id := range result.TaxYears {
		ty, err := ws.config.TaxYear(id)
		if err != nil {
			sendJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		result.Years[id] = ty
	}
	sendJSON(w, http.StatusOK, APIResponse{Success: true, Result: result})
}

func (ws *WebServer) handleIncomeTax(w http.ResponseWriter, r *http.Request) {
	var req APIIncomeTaxRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	ty, ok := ws.taxYear(w, req.TaxYear)
	if !ok {
		return
	}

	in := req.IncomeTaxInput
	nonNegative(&in.GrossSalary, &in.OtherIncome, &in.MonthlyPensionContribution)

	result, err := CalculateIncomeTax(in, ty)
	if err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, APIResponse{Success: true, TaxYear: ty.Label, Result: result.Rounded()})
}

func (ws *WebServer) handleStampDuty(w http.ResponseWriter, r *http.Request) {
	var req APIStampDutyRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	ty, ok := ws.taxYear(w, req.TaxYear)
	if !ok {
		return
	}
	nonNegative(&req.Price)

	result := APIStampDutyResult{
		BandedLevy: CalculateStampDuty(req.Price, req.Buyer, ty).Rounded(),
		Buyer:      req.Buyer,
		Comparison: CompareStampDuty(req.Price, ty).Rounded(),
	}
	sendJSON(w, http.StatusOK, APIResponse{Success: true, TaxYear: ty.Label, Result: result})
}

func (ws *WebServer) handleInheritanceTax(w http.ResponseWriter, r *http.Request) {
	var req APIInheritanceTaxRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	ty, ok := ws.taxYear(w, req.TaxYear)
	if !ok {
		return
	}

	in := req.InheritanceTaxInput
	nonNegative(&in.Property, &in.Savings, &in.Investments, &in.OtherAssets,
		&in.Liabilities, &in.GiftsInLast7Years, &in.CharitableDonation)

	result := CalculateInheritanceTax(in, ty.InheritanceTax)
	sendJSON(w, http.StatusOK, APIResponse{Success: true, TaxYear: ty.Label, Result: result.Rounded()})
}

func (ws *WebServer) handleMortgage(w http.ResponseWriter, r *http.Request) {
	in, result, ok := decodeMortgage(w, r)
	if !ok {
		return
	}
	result.MortgageResult = CalculateMortgage(in).Rounded()

	now := ws.now()
	if months := result.Baseline.PayoffMonth; months > 0 {
		result.PayoffDate = PayoffDate(now, months).Format("Jan 2006")
	}
	if s := result.Savings; s != nil {
		result.NewPayoffDate = PayoffDate(now, s.NewTermMonths).Format("Jan 2006")
	}
	sendJSON(w, http.StatusOK, APIResponse{Success: true, Result: result})
}

// handleMortgagePDF returns the mortgage report as application/pdf
func (ws *WebServer) handleMortgagePDF(w http.ResponseWriter, r *http.Request) {
	in, _, ok := decodeMortgage(w, r)
	if !ok {
		return
	}

	data, err := GenerateMortgagePDFReport(in, CalculateMortgage(in))
	if err != nil {
		ws.logger.WithError(err).Error("PDF generation failed")
		sendJSONError(w, http.StatusInternalServerError, "Failed to generate PDF: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="mortgage-report.pdf"`)
	w.Write(data)
}

// decodeMortgage reads a mortgage request, deriving the loan from price and
// deposit when no principal is given
func decodeMortgage(w http.ResponseWriter, r *http.Request) (MortgageInput, APIMortgageResult, bool) {
	var req APIMortgageRequest
	if !decodeRequest(w, r, &req) {
		return MortgageInput{}, APIMortgageResult{}, false
	}

	in := req.MortgageInput
	nonNegative(&req.Price, &req.Deposit, &in.Principal, &in.AnnualRatePercent,
		&in.MonthlyOverpayment, &in.LumpSum)
	in.TermYears = max(in.TermYears, 0)
	in.LumpSumYear = max(in.LumpSumYear, 0)
	if err := in.Validate(); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return MortgageInput{}, APIMortgageResult{}, false
	}

	var result APIMortgageResult
	if in.Principal == 0 && req.Price > 0 {
		in.Principal, result.DepositPercent, result.LoanToValue = LoanToValue(req.Price, req.Deposit)
		result.DepositPercent = RoundPence(result.DepositPercent)
		result.LoanToValue = RoundPence(result.LoanToValue)
	}
	return in, result, true
}

func (ws *WebServer) handleCompoundInterest(w http.ResponseWriter, r *http.Request) {
	var in GrowthInput
	if !decodeRequest(w, r, &in) {
		return
	}
	nonNegative(&in.InitialPrincipal, &in.PeriodicContribution, &in.AnnualRatePercent)
	in.Years = max(in.Years, 0)
	if err := in.Validate(); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	points := ProjectGrowth(in)
	result := APIGrowthResult{
		Points:  roundGrowth(points),
		Summary: SummariseGrowth(points).Rounded(),
	}
	sendJSON(w, http.StatusOK, APIResponse{Success: true, Result: result})
}

func (ws *WebServer) handleSimpleInterest(w http.ResponseWriter, r *http.Request) {
	var req APISimpleInterestRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	nonNegative(&req.Principal, &req.AnnualRatePercent, &req.Years)

	result := CalculateSimpleInterest(req.Principal, req.AnnualRatePercent, req.Years)
	sendJSON(w, http.StatusOK, APIResponse{Success: true, Result: result.Rounded()})
}

// taxYear resolves the requested tax year, writing a 400 when it is unknown
func (ws *WebServer) taxYear(w http.ResponseWriter, id string) (*TaxYearConfig, bool) {
	ty, err := ws.config.TaxYear(id)
	if err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return ty, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		sendJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// nonNegative clamps negative and non-finite inputs to 0
func nonNegative(values ...*float64) {
	for _, v := range values {
		if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
		}
	}
}

// sendJSON encodes before writing so an unencodable result (NaN or ±Inf)
// becomes a 500 rather than a 200 with a broken body
func sendJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(APIResponse{Success: false, Error: "Failed to encode result: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// sendJSONError sends a JSON error response
func sendJSONError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, APIResponse{Success: false, Error: message})
}
