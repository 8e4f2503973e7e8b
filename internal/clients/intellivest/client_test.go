package intellivest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/summary/AAPL", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"summary": "Apple Inc. overview..."})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	summary, err := client.GetSummary(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc. overview...", summary)
}

func TestAskQuestion_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/question", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is a bond?", body["question"])

		json.NewEncoder(w).Encode(map[string]string{"answer": "A bond is a loan to a company or government."})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	answer, err := client.AskQuestion(context.Background(), "What is a bond?")
	require.NoError(t, err)
	assert.Equal(t, "A bond is a loan to a company or government.", answer)
}

func TestAnalyzePortfolio_SendsCSVData(t *testing.T) {
	csvText := "Stock,Shares,Price\nAAPL,10,150.00\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/portfolio/analyze", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, csvText, body["csvData"])

		json.NewEncoder(w).Encode(map[string]string{"analysis": "Diversification score: 7/10"})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	analysis, err := client.AnalyzePortfolio(context.Background(), csvText)
	require.NoError(t, err)
	assert.Equal(t, "Diversification score: 7/10", analysis)
}

func TestGetNews_UsesSummaryField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/MSFT", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"summary": "Microsoft cloud growth continues."})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	news, err := client.GetNews(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "Microsoft cloud growth continues.", news)
}

func TestCall_NonOKStatus_ParsesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not retrieve stock data for 'ZZZZ'."})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(context.Background(), "ZZZZ")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Could not retrieve stock data for 'ZZZZ'.", apiErr.Message)
	assert.Equal(t, "/summary/ZZZZ", apiErr.Endpoint)
}

func TestCall_NonOKStatus_RawBodyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.AskQuestion(context.Background(), "anything")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestCall_MissingField_IsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"unexpected": 42})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCall_NonStringField_IsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"summary": 42})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCall_InvalidJSON_IsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetNews(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCall_UnreachableServer_IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCall_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(ctx, "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, ErrTransport))
}

func TestGetSummary_EscapesTickerPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]string{"summary": "ok"})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(context.Background(), "BRK/B")
	require.NoError(t, err)
	assert.Equal(t, "/summary/BRK%2FB", gotPath)
}
