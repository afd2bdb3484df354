package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatValidation writes a validation report as JSON
func (f *Formatter) FormatValidation(report ValidationDTO) error {
	return f.encode(report)
}

// FormatSubmission writes a submission outcome as JSON
func (f *Formatter) FormatSubmission(result SubmissionDTO) error {
	return f.encode(result)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
