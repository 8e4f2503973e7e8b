package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/intellivest/assist/internal/assistant"
	"github.com/intellivest/assist/internal/clients/intellivest"
	"github.com/intellivest/assist/internal/common"
	"github.com/intellivest/assist/internal/interfaces"
	"github.com/intellivest/assist/internal/models"
)

// cliApp wires config, logging, the backend gateway, and the assistant
// service for one command invocation.
type cliApp struct {
	config  *common.Config
	logger  *common.Logger
	service interfaces.AssistantService
	plain   bool
	out     io.Writer
}

// newCLIApp builds the app from the -config flag, ASSIST_CONFIG, or defaults.
func newCLIApp() (*cliApp, error) {
	configPath := *flagConfig
	if configPath == "" {
		configPath = os.Getenv("ASSIST_CONFIG")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	client := intellivest.NewClient(
		intellivest.WithBaseURL(config.Backend.BaseURL),
		intellivest.WithTimeout(config.Backend.GetTimeout()),
		intellivest.WithRateLimit(config.Backend.RateLimit),
		intellivest.WithLogger(logger),
	)

	return &cliApp{
		config:  config,
		logger:  logger,
		service: assistant.NewService(client, assistant.WithLogger(logger)),
		plain:   *flagPlain,
		out:     os.Stdout,
	}, nil
}

// render prints the settled section state and maps it to an exit status.
func (a *cliApp) render(st models.InteractionState) subcommands.ExitStatus {
	if st.HasError() {
		fmt.Fprintln(os.Stderr, "Error:", st.ErrorMessage)
		return subcommands.ExitFailure
	}

	text := st.Result
	if !a.plain {
		if rendered, err := renderMarkdown(text); err == nil {
			text = rendered
		}
	}

	fmt.Fprintln(a.out, text)
	return subcommands.ExitSuccess
}

// renderMarkdown formats backend text for the terminal. The backend
// returns model-generated prose that is frequently markdown.
func renderMarkdown(text string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(text)
}
