package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// FormatError formats an error for display.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	if format == FormatJSON {
		return formatErrorJSON(w, err)
	}
	return formatErrorText(w, err)
}

// formatErrorJSON outputs error in JSON format.
func formatErrorJSON(w io.Writer, err error) error {
	detail := ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: clierr.ExitGeneral,
	}

	var ce *clierr.CLIError
	if errors.As(err, &ce) {
		detail = ErrorDetail{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    ce.Details,
			Suggestion: ce.Suggestion,
			ExitCode:   ce.ExitCode,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ErrorOutput{Error: detail})
}

// formatErrorText outputs error in text format.
func formatErrorText(w io.Writer, err error) error {
	var sb strings.Builder

	var ce *clierr.CLIError
	if errors.As(err, &ce) {
		sb.WriteString(fmt.Sprintf("Error: %s\n", ce.Message))

		if len(ce.Details) > 0 {
			sb.WriteString("\nDetails:\n")
			for k, v := range ce.Details {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
			}
		}

		if ce.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", ce.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %s\n", err.Error()))
	}

	_, writeErr := w.Write([]byte(sb.String()))
	return writeErr
}
