package output

import (
	"fmt"
	"io"

	"github.com/slopguard/slopguard/internal/response"
	"github.com/slopguard/slopguard/internal/service"
)

// MarkdownFormatter writes the same markdown body that would be posted
// as a PR comment, prefixed with the PR identity line. Useful for piping
// into gh or previewing what --post would say.
type MarkdownFormatter struct{}

// Format writes the markdown report.
func (f *MarkdownFormatter) Format(eval *service.Evaluation, w io.Writer) error {
	pr := eval.Snapshot.PR
	if pr.Title != "" {
		fmt.Fprintf(w, "# PR #%d: %s\n\n", pr.Number, pr.Title)
	}
	if eval.Bypassed {
		fmt.Fprintln(w, eval.Result.Summary)
		return nil
	}
	_, err := io.WriteString(w, response.RenderComment(eval.Result))
	return err
}
