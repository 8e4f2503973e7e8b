package interfaces

import (
	"context"
	"io"

	"github.com/intellivest/assist/internal/models"
)

// AssistantService drives the per-section interaction state machine.
// Every action returns the settled InteractionState for its section:
// a guard failure surfaces immediately without a request, otherwise
// the section passes through its loading phase and settles with either
// a result or an error message.
type AssistantService interface {
	// FetchSummary fetches a stock summary for a ticker
	FetchSummary(ctx context.Context, ticker string) models.InteractionState

	// AskQuestion submits a free-text financial question
	AskQuestion(ctx context.Context, question string) models.InteractionState

	// AnalyzePortfolio reads portfolio CSV text from src and submits it
	AnalyzePortfolio(ctx context.Context, src io.Reader) models.InteractionState

	// AnalyzePortfolioFile reads a portfolio CSV file and submits it
	AnalyzePortfolioFile(ctx context.Context, path string) models.InteractionState

	// FetchNews fetches summarized news and filings for a ticker
	FetchNews(ctx context.Context, ticker string) models.InteractionState

	// Snapshot returns a copy of the current state for a section
	Snapshot(section models.Section) models.InteractionState
}
