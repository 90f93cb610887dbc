package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/internal/expense"
	"github.com/loanlens/loanlens/internal/server"
	"github.com/loanlens/loanlens/pkg/validation"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := expense.NewCSVStore(filepath.Join(t.TempDir(), "expenses.csv"), nil)
	require.NoError(t, err)

	comparator := banks.NewComparator(nil, []banks.Offer{
		{Bank: "First National", MinAmount: 10000, MaxAmount: 500000, AnnualRatePercent: 6.5, MaxTermYears: 30, ProcessingFeePercent: 1.0},
		{Bank: "Coastal Credit", MinAmount: 5000, MaxAmount: 150000, AnnualRatePercent: 5.9, MaxTermYears: 20},
	})

	h := server.NewHandler(server.Options{
		Comparator: comparator,
		Expenses:   store,
		Bounds:     validation.DefaultBounds(),
		Version:    "test",
	})
	ts := httptest.NewServer(server.NewRouter(h, nil))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestAmortizeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/amortize", map[string]interface{}{
		"principal":         250000,
		"annualRatePercent": 5.0,
		"termYears":         30,
		"startDate":         "2026-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Summary struct {
			PeriodicPayment float64 `json:"periodicPayment"`
			Periods         int     `json:"periods"`
			PayoffDate      string  `json:"payoffDate"`
		} `json:"summary"`
		Schedule []struct {
			Period  int     `json:"period"`
			Balance float64 `json:"balance"`
		} `json:"schedule"`
	}
	decodeJSON(t, resp, &result)

	assert.InDelta(t, 1342.05, result.Summary.PeriodicPayment, 0.01)
	assert.Equal(t, 360, result.Summary.Periods)
	assert.Equal(t, "2055-12", result.Summary.PayoffDate)
	require.Len(t, result.Schedule, 360)
	assert.Zero(t, result.Schedule[359].Balance)
}

func TestAmortizeEndpointCaches(t *testing.T) {
	ts := newTestServer(t)
	payload := map[string]interface{}{
		"principal":         120000,
		"annualRatePercent": 4.0,
		"termYears":         15,
	}

	first := postJSON(t, ts.URL+"/api/amortize", payload)
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Empty(t, first.Header.Get("X-Cache"))
	_ = first.Body.Close()

	second := postJSON(t, ts.URL+"/api/amortize", payload)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))
	_ = second.Body.Close()
}

func TestAmortizeEndpointReportsAcceleration(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/amortize", map[string]interface{}{
		"principal":         250000,
		"annualRatePercent": 5.0,
		"termYears":         30,
		"extraPayment":      200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Acceleration *struct {
			BaselinePeriods int     `json:"baselinePeriods"`
			MonthsSaved     int     `json:"monthsSaved"`
			InterestSaved   float64 `json:"interestSaved"`
		} `json:"acceleration"`
	}
	decodeJSON(t, resp, &result)

	require.NotNil(t, result.Acceleration)
	assert.Equal(t, 360, result.Acceleration.BaselinePeriods)
	assert.Positive(t, result.Acceleration.MonthsSaved)
	assert.Positive(t, result.Acceleration.InterestSaved)
}

func TestAmortizeEndpointRejectsOutOfBounds(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"Principal below minimum", map[string]interface{}{"principal": 500, "annualRatePercent": 5.0, "termYears": 10}},
		{"Rate above maximum", map[string]interface{}{"principal": 100000, "annualRatePercent": 25.0, "termYears": 10}},
		{"Term above maximum", map[string]interface{}{"principal": 100000, "annualRatePercent": 5.0, "termYears": 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/amortize", tt.payload)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestEligibilityEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/eligibility", map[string]interface{}{
		"netMonthlyIncome":    6000,
		"existingObligations": 400,
		"annualRatePercent":   7.5,
		"termYears":           20,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		MaxAffordableEMI float64 `json:"maxAffordableEmi"`
		EligibleAmount   float64 `json:"eligibleAmount"`
	}
	decodeJSON(t, resp, &result)

	assert.InDelta(t, 2000.0, result.MaxAffordableEMI, 0.01)
	assert.Positive(t, result.EligibleAmount)
}

func TestCompareBanksEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/banks/compare?amount=100000&termMonths=240")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result []struct {
		Offer struct {
			Bank string `json:"bank"`
		} `json:"offer"`
		EMI float64 `json:"emi"`
	}
	decodeJSON(t, resp, &result)

	require.Len(t, result, 2)
	assert.Equal(t, "Coastal Credit", result[0].Offer.Bank, "lowest rate should rank first")
	assert.LessOrEqual(t, result[0].EMI, result[1].EMI)
}

func TestCompareBanksEndpointBadQuery(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/banks/compare?amount=abc&termMonths=240")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExpenseEndpoints(t *testing.T) {
	ts := newTestServer(t)

	add := postJSON(t, ts.URL+"/api/expenses", map[string]string{
		"date":        "2026-08-03",
		"description": "groceries",
		"category":    "food",
		"kind":        "expense",
		"amount":      "84.15",
	})
	require.Equal(t, http.StatusCreated, add.StatusCode)
	_ = add.Body.Close()

	bad := postJSON(t, ts.URL+"/api/expenses", map[string]string{
		"date":        "2026-08-03",
		"description": "",
		"category":    "food",
		"kind":        "expense",
		"amount":      "10",
	})
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
	_ = bad.Body.Close()

	list, err := http.Get(ts.URL + "/api/expenses")
	require.NoError(t, err)
	var records []struct {
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	decodeJSON(t, list, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "84.15", records[0].Amount)

	summary, err := http.Get(ts.URL + "/api/expenses/summary")
	require.NoError(t, err)
	var sum struct {
		TotalExpenses string `json:"totalExpenses"`
		Count         int    `json:"count"`
	}
	decodeJSON(t, summary, &sum)
	assert.Equal(t, "84.15", sum.TotalExpenses)
	assert.Equal(t, 1, sum.Count)

	export, err := http.Get(ts.URL + "/api/expenses/export")
	require.NoError(t, err)
	defer func() { _ = export.Body.Close() }()
	assert.Equal(t, "text/csv", export.Header.Get("Content-Type"))
	assert.Contains(t, export.Header.Get("Content-Disposition"), "expenses.csv")
}

func TestVersionEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/version")
	require.NoError(t, err)
	var result map[string]string
	decodeJSON(t, resp, &result)
	assert.Equal(t, "test", result["version"])
}
