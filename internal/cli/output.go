package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation refused (empty checkout, unknown product)
	ExitCommandError = 2 // Bad invocation (invalid flags or arguments)
	ExitUnavailable  = 3 // Catalog could not be reached
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the envelope for json and yaml output.
type Response struct {
	Status string      `json:"status" yaml:"status"`
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// texter renders a value for the text format.
type texter interface {
	writeText(w io.Writer) error
}

// Printer renders command results in the selected format.
type Printer struct {
	Format string
	Writer io.Writer
}

// Success prints data.
func (p *Printer) Success(data interface{}) error {
	switch p.Format {
	case "json":
		return json.NewEncoder(p.Writer).Encode(Response{Status: "ok", Data: data})
	case "yaml":
		return p.yaml(Response{Status: "ok", Data: data})
	}

	if t, ok := data.(texter); ok {
		return t.writeText(p.Writer)
	}
	_, err := fmt.Fprintln(p.Writer, data)
	return err
}

// Failure prints err.
func (p *Printer) Failure(err error) error {
	switch p.Format {
	case "json":
		return json.NewEncoder(p.Writer).Encode(Response{Status: "error", Error: err.Error()})
	case "yaml":
		return p.yaml(Response{Status: "error", Error: err.Error()})
	}
	_, werr := fmt.Fprintf(p.Writer, "Error: %s\n", err)
	return werr
}

func (p *Printer) yaml(v interface{}) error {
	enc := yaml.NewEncoder(p.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
