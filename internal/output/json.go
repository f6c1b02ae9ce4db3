package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/slopguard/slopguard/internal/service"
)

// JSONFormatter emits the evaluation as machine-readable JSON for CI
// pipelines and downstream tooling.
type JSONFormatter struct{}

type jsonCheck struct {
	Name          string `json:"name"`
	Score         int    `json:"score"`
	Weight        int    `json:"weight"`
	WeightedScore int    `json:"weighted_score"`
	Reason        string `json:"reason,omitempty"`
}

type jsonReport struct {
	Number   int         `json:"number"`
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	Score    int         `json:"score"`
	Verdict  string      `json:"verdict"`
	Bypassed bool        `json:"bypassed,omitempty"`
	Summary  string      `json:"summary"`
	Checks   []jsonCheck `json:"checks"`
}

// Format writes the evaluation as indented JSON.
func (f *JSONFormatter) Format(eval *service.Evaluation, w io.Writer) error {
	r := eval.Result
	pr := eval.Snapshot.PR

	report := jsonReport{
		Number:   pr.Number,
		Title:    pr.Title,
		Author:   pr.Author,
		Score:    r.FinalScore,
		Verdict:  string(r.Verdict),
		Bypassed: eval.Bypassed,
		Summary:  r.Summary,
		Checks:   make([]jsonCheck, 0, len(r.WeightedChecks)),
	}
	for _, wc := range r.WeightedChecks {
		report.Checks = append(report.Checks, jsonCheck{
			Name:          string(wc.Name),
			Score:         wc.Score,
			Weight:        wc.Weight,
			WeightedScore: wc.WeightedScore,
			Reason:        wc.Reason,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
