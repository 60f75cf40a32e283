// Package export writes a finished round to files: the raw responses as CSV
// and the calibration chart as HTML.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/calibrate-app/calibrate/internal/chart"
	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/scoring"
)

// ResponseHeader is the column layout of the responses CSV.
var ResponseHeader = []string{
	"id", "category", "prompt", "selected_answer", "correct_answer", "is_correct", "confidence_percent",
}

// WriteResponses writes one CSV row per submission.
func WriteResponses(w io.Writer, subs []round.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResponseHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range subs {
		row := []string{
			s.Question.ID,
			s.Question.Category,
			s.Question.Prompt,
			s.Answer,
			s.Question.CorrectOption(),
			strconv.FormatBool(s.Correct),
			strconv.Itoa(s.Confidence.Percent()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", s.Question.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Files lists what Round wrote.
type Files struct {
	Responses string
	Chart     string
}

// Round writes responses-<stamp>.csv and chart-<stamp>.html into dir.
func Round(dir string, subs []round.Submission, res *scoring.Result, now time.Time) (Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("create export dir: %w", err)
	}
	stamp := now.Format("20060102-150405")

	files := Files{
		Responses: filepath.Join(dir, "responses-"+stamp+".csv"),
		Chart:     filepath.Join(dir, "chart-"+stamp+".html"),
	}

	if err := writeFile(files.Responses, func(w io.Writer) error {
		return WriteResponses(w, subs)
	}); err != nil {
		return Files{}, err
	}

	subtitle := fmt.Sprintf("%d questions, %.1f%% correct, Brier %.3f",
		res.Total, res.Accuracy*100, res.Brier)
	if err := writeFile(files.Chart, func(w io.Writer) error {
		return chart.RenderHTML(w, chart.Build(res.Buckets), subtitle)
	}); err != nil {
		return Files{}, err
	}

	return files, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
