// Package stub implements a local stand-in for the Intellivest backend.
// It serves the same endpoints with deterministic canned text so the CLI
// and the gateway can be exercised offline. No market data is fetched and
// no model is called; responses are derived from the request alone.
package stub

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/intellivest/assist/internal/common"
)

// Server holds the stub backend handlers.
type Server struct {
	logger *common.Logger
}

// NewServer creates a stub backend server.
func NewServer(logger *common.Logger) *Server {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Server{logger: logger}
}

// Handler returns the HTTP handler with all routes and middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/summary/", s.handleSummary)
	mux.HandleFunc("/question", s.handleQuestion)
	mux.HandleFunc("/portfolio/analyze", s.handlePortfolioAnalyze)
	mux.HandleFunc("/news/", s.handleNews)

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	return applyMiddleware(mux, s.logger)
}

// quotePrice derives a stable fake price from the ticker so repeated
// calls return identical text.
func quotePrice(ticker string) float64 {
	var h uint32
	for _, r := range strings.ToUpper(ticker) {
		h = h*31 + uint32(r)
	}
	return 10 + float64(h%49000)/100
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.TrimPrefix(r.URL.Path, "/summary/")
	if ticker == "" || strings.Contains(ticker, "/") {
		WriteDetail(w, http.StatusNotFound, "Not found")
		return
	}

	upper := strings.ToUpper(ticker)
	summary := fmt.Sprintf(
		"%s is currently trading at $%.2f. The company has shown steady activity in recent sessions. "+
			"For a novice investor, this price reflects what the market is willing to pay for one share today.",
		upper, quotePrice(upper))

	WriteJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		WriteDetail(w, http.StatusBadRequest, "Question must not be empty.")
		return
	}

	answer := fmt.Sprintf(
		"Here is a simple explanation for %q: in plain terms, this is a common topic for new investors, "+
			"and the key idea is to understand what you own and why you own it.",
		strings.TrimSpace(req.Question))

	WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// holding is one parsed portfolio row.
type holding struct {
	Stock  string
	Shares float64
	Price  float64
}

func (s *Server) handlePortfolioAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		CSVData string `json:"csvData"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.CSVData) == "" {
		WriteDetail(w, http.StatusBadRequest, "Uploaded CSV file is empty.")
		return
	}

	holdings, err := parseHoldings(req.CSVData)
	if err != nil {
		WriteDetail(w, http.StatusBadRequest, fmt.Sprintf("Error analyzing portfolio: %v", err))
		return
	}

	var total float64
	for _, h := range holdings {
		total += h.Shares * h.Price
	}

	top := make([]holding, len(holdings))
	copy(top, holdings)
	sort.Slice(top, func(i, j int) bool { return top[i].Shares > top[j].Shares })
	if len(top) > 3 {
		top = top[:3]
	}

	var topParts []string
	for _, h := range top {
		topParts = append(topParts, fmt.Sprintf("%s (%g shares)", h.Stock, h.Shares))
	}

	analysis := fmt.Sprintf(
		"Your portfolio holds %d position(s) with a total value of $%.2f. "+
			"Top holdings: %s. This is an overview, not investment advice.",
		len(holdings), total, strings.Join(topParts, ", "))

	WriteJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

// parseHoldings reads CSV text with a Stock,Shares,Price header.
func parseHoldings(csvData string) ([]holding, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV has no holdings rows")
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"stock", "shares", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV is missing %q column", required)
		}
	}

	var holdings []holding
	for _, row := range records[1:] {
		shares, err := strconv.ParseFloat(strings.TrimSpace(row[cols["shares"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shares value %q", row[cols["shares"]])
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[cols["price"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price value %q", row[cols["price"]])
		}
		holdings = append(holdings, holding{
			Stock:  strings.TrimSpace(row[cols["stock"]]),
			Shares: shares,
			Price:  price,
		})
	}

	return holdings, nil
}

// newsItems holds canned headlines for a few well-known tickers.
var newsItems = map[string][]string{
	"AAPL": {
		"Apple's quarterly earnings exceed expectations.",
		"Apple announces a new product launch.",
	},
	"GOOG": {
		"Google announces new AI initiatives.",
		"Google faces regulatory scrutiny.",
	},
	"MSFT": {
		"Microsoft releases a new software version.",
		"Microsoft's cloud business continues to grow.",
	},
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.TrimPrefix(r.URL.Path, "/news/")
	if ticker == "" || strings.Contains(ticker, "/") {
		WriteDetail(w, http.StatusNotFound, "Not found")
		return
	}

	upper := strings.ToUpper(ticker)
	items, ok := newsItems[upper]
	if !ok {
		items = []string{fmt.Sprintf("No major headlines for %s this week.", upper)}
	}

	summary := fmt.Sprintf("Recent news for %s: %s", upper, strings.Join(items, " "))
	WriteJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
