// Package output renders evaluation results for the terminal.
package output

import (
	"fmt"
	"io"

	"github.com/slopguard/slopguard/internal/service"
)

// Formatter renders one evaluation to a writer.
type Formatter interface {
	Format(eval *service.Evaluation, w io.Writer) error
}

// NewFormatter returns the formatter for the named format.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected table, markdown, or json)", format)
	}
}
