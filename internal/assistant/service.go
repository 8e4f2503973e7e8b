// Package assistant implements the per-section interaction state machine
// over the Intellivest backend client.
package assistant

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/intellivest/assist/internal/clients/intellivest"
	"github.com/intellivest/assist/internal/common"
	"github.com/intellivest/assist/internal/interfaces"
	"github.com/intellivest/assist/internal/models"
)

// Guard messages surfaced before any request is issued.
const (
	MsgEnterTicker   = "Please enter a stock ticker"
	MsgEnterQuestion = "Please enter a question"
	MsgUploadFile    = "Please upload a portfolio file"
	MsgFileRead      = "Failed to read the file."
)

// Fallback messages used when a failure carries no usable detail.
const (
	MsgSummaryFailed   = "Failed to fetch summary"
	MsgQuestionFailed  = "Failed to get answer"
	MsgPortfolioFailed = "Failed to analyze portfolio"
	MsgNewsFailed      = "Failed to fetch news"
)

// Service holds one InteractionState per section. Sections are fully
// independent: concurrent actions on different sections never interfere
// with each other's visible state. A submission for a section that is
// already loading is rejected without touching the in-flight request.
type Service struct {
	client interfaces.BackendClient
	logger *common.Logger

	mu       sync.Mutex
	sections map[models.Section]*models.InteractionState
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the assistant service with all sections idle and empty
func NewService(client interfaces.BackendClient, opts ...ServiceOption) *Service {
	s := &Service{
		client:   client,
		logger:   common.NewSilentLogger(),
		sections: make(map[models.Section]*models.InteractionState),
	}

	for _, section := range models.Sections() {
		s.sections[section] = &models.InteractionState{Section: section}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns a copy of the current state for a section.
func (s *Service) Snapshot(section models.Section) models.InteractionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.sections[section]
}

// guardFail records a validation error without entering the loading state.
// A guard failure on a loading section is ignored, matching begin.
func (s *Service) guardFail(section models.Section, message string) models.InteractionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sections[section]
	if st.Loading {
		return *st
	}

	st.ErrorMessage = message
	st.Result = ""
	st.UpdatedAt = time.Now()
	return *st
}

// begin transitions a section into the loading state, clearing any prior
// result and error. It reports false when the section is already loading,
// in which case the submission is rejected and the state is untouched.
func (s *Service) begin(section models.Section, input string) (models.InteractionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sections[section]
	if st.Loading {
		s.logger.Debug().Str("section", string(section)).Msg("Submission rejected: request already in flight")
		return *st, false
	}

	st.Input = input
	st.Loading = true
	st.Result = ""
	st.ErrorMessage = ""
	st.UpdatedAt = time.Now()
	return *st, true
}

// settle records the outcome of a request and leaves the section idle.
func (s *Service) settle(section models.Section, result string, err error, fallback string) models.InteractionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sections[section]
	st.Loading = false
	st.UpdatedAt = time.Now()

	if err != nil {
		st.Result = ""
		st.ErrorMessage = errorMessage(err, fallback)
		s.logger.Warn().Str("section", string(section)).Err(err).Msg("Assistant action failed")
		return *st
	}

	st.Result = result
	st.ErrorMessage = ""
	return *st
}

// errorMessage translates a request error into the single visible message
// for the section. Backend-reported detail is surfaced when present;
// transport and malformed-response failures get the generic fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *intellivest.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, intellivest.ErrTransport) || errors.Is(err, intellivest.ErrMalformedResponse) {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// FetchSummary fetches a stock summary for a ticker
func (s *Service) FetchSummary(ctx context.Context, ticker string) models.InteractionState {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return s.guardFail(models.SectionSummary, MsgEnterTicker)
	}

	if st, ok := s.begin(models.SectionSummary, ticker); !ok {
		return st
	}

	result, err := s.client.GetSummary(ctx, ticker)
	return s.settle(models.SectionSummary, result, err, MsgSummaryFailed)
}

// AskQuestion submits a free-text financial question
func (s *Service) AskQuestion(ctx context.Context, question string) models.InteractionState {
	if strings.TrimSpace(question) == "" {
		return s.guardFail(models.SectionQuestion, MsgEnterQuestion)
	}

	if st, ok := s.begin(models.SectionQuestion, question); !ok {
		return st
	}

	result, err := s.client.AskQuestion(ctx, question)
	return s.settle(models.SectionQuestion, result, err, MsgQuestionFailed)
}

// AnalyzePortfolio reads portfolio CSV text from src and submits it for
// analysis. The read and the call form one sequential pipeline with a
// single error path: a read failure settles the section without any
// network request.
func (s *Service) AnalyzePortfolio(ctx context.Context, src io.Reader) models.InteractionState {
	return s.analyzePortfolio(ctx, "", src)
}

func (s *Service) analyzePortfolio(ctx context.Context, name string, src io.Reader) models.InteractionState {
	if src == nil {
		return s.guardFail(models.SectionPortfolio, MsgUploadFile)
	}

	if st, ok := s.begin(models.SectionPortfolio, name); !ok {
		return st
	}

	data, err := io.ReadAll(src)
	if err != nil || !utf8.Valid(data) {
		return s.settle(models.SectionPortfolio, "", errors.New(MsgFileRead), MsgFileRead)
	}

	result, err := s.client.AnalyzePortfolio(ctx, string(data))
	return s.settle(models.SectionPortfolio, result, err, MsgPortfolioFailed)
}

// AnalyzePortfolioFile reads a portfolio CSV file and submits it.
func (s *Service) AnalyzePortfolioFile(ctx context.Context, path string) models.InteractionState {
	if strings.TrimSpace(path) == "" {
		return s.guardFail(models.SectionPortfolio, MsgUploadFile)
	}

	f, err := os.Open(path)
	if err != nil {
		if st, ok := s.begin(models.SectionPortfolio, path); !ok {
			return st
		}
		return s.settle(models.SectionPortfolio, "", errors.New(MsgFileRead), MsgFileRead)
	}
	defer f.Close()

	return s.analyzePortfolio(ctx, path, f)
}

// FetchNews fetches summarized news and filings for a ticker
func (s *Service) FetchNews(ctx context.Context, ticker string) models.InteractionState {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return s.guardFail(models.SectionNews, MsgEnterTicker)
	}

	if st, ok := s.begin(models.SectionNews, ticker); !ok {
		return st
	}

	result, err := s.client.GetNews(ctx, ticker)
	return s.settle(models.SectionNews, result, err, MsgNewsFailed)
}

// Ensure Service implements AssistantService
var _ interfaces.AssistantService = (*Service)(nil)
