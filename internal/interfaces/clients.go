// Package interfaces defines service contracts for the assistant
package interfaces

import "context"

// BackendClient provides access to the Intellivest backend API.
// Implementations perform all network I/O for the assistant and
// translate transport and status outcomes into errors.
type BackendClient interface {
	// GetSummary retrieves an AI-generated stock summary for a ticker
	GetSummary(ctx context.Context, ticker string) (string, error)

	// AskQuestion answers a free-text financial question
	AskQuestion(ctx context.Context, question string) (string, error)

	// AnalyzePortfolio analyzes portfolio CSV text
	AnalyzePortfolio(ctx context.Context, csvData string) (string, error)

	// GetNews retrieves summarized news and filings for a ticker
	GetNews(ctx context.Context, ticker string) (string, error)
}
