package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/chart"
	"github.com/calibrate-app/calibrate/internal/scoring"
	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

const contentWidth = 72

func newBucketTable(buckets []scoring.Bucket) table.Model {
	cols := []table.Column{
		{Title: "Said", Width: 6},
		{Title: "Answered", Width: 9},
		{Title: "Correct", Width: 8},
		{Title: "Accuracy", Width: 9},
		{Title: "Gap", Width: 8},
		{Title: "Verdict", Width: 16},
	}
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, table.Row{
			b.Confidence.String(),
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%d", b.Correct),
			fmt.Sprintf("%.1f%%", b.Accuracy()*100),
			fmt.Sprintf("%+.1f", b.Gap()*100),
			string(scoring.BucketVerdict(b, scoring.DefaultTolerance)),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Secondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(theme.Border)
	styles.Cell = styles.Cell.Foreground(theme.Text)
	styles.Selected = styles.Cell

	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithWidth(tableWidth(cols)),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
}

// tableWidth is the rendered width of cols with the default one-cell
// padding on each side. A table without a width renders no rows.
func tableWidth(cols []table.Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width + 2
	}
	return w
}

func (s *ResultsScreen) View(width, height int) string {
	w := min(width-4, contentWidth)
	s.body.SetWidth(w)
	s.body.SetHeight(max(height-1, 1))
	s.body.SetContent(s.content(w))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.body.View())
}

func (s *ResultsScreen) content(w int) string {
	res := s.opts.Result
	sections := []string{
		s.summary(),
		theme.Subtitle.Render("Calibration by confidence level"),
		s.buckets.View(),
		theme.Subtitle.Render("Calibration curve"),
		plot(chart.Build(res.Buckets)),
	}
	if cats := categories(res.Categories); cats != "" {
		sections = append(sections, theme.Subtitle.Render("By category"), cats)
	}
	if c := s.coachPanel(w); c != "" {
		sections = append(sections, c)
	}
	if e := s.exportLine(); e != "" {
		sections = append(sections, e)
	}
	return strings.Join(sections, "\n\n")
}

// plot colours the text chart's glyphs and adds a legend.
func plot(c chart.Chart) string {
	r := strings.NewReplacer(
		string(chart.GlyphIdeal), theme.IdealLine.Render(string(chart.GlyphIdeal)),
		string(chart.GlyphObserved), theme.ObservedLine.Render(string(chart.GlyphObserved)),
		string(chart.GlyphBoth), theme.ObservedLine.Render(string(chart.GlyphBoth)),
	)
	legend := theme.IdealLine.Render(string(chart.GlyphIdeal)+" perfect calibration") + "   " +
		theme.ObservedLine.Render(string(chart.GlyphObserved)+" your answers")
	return r.Replace(chart.Text(c)) + "\n\n" + legend
}

func (s *ResultsScreen) summary() string {
	res := s.opts.Result
	row := func(label, value string) string {
		return theme.Label.Width(18).Render(label) + theme.Body.Render(value)
	}
	lines := []string{
		theme.Title.Render(verdictTitle(res.Verdict)),
		theme.Hint.Render(res.Verdict.Description()),
		"",
		row("Questions", fmt.Sprintf("%d", res.Total)),
		row("Correct", fmt.Sprintf("%d", res.Correct)),
		row("Accuracy", fmt.Sprintf("%.1f%%", res.Accuracy*100)),
		row("Mean confidence", fmt.Sprintf("%.1f%%", res.MeanConfidence()*100)),
		row("Brier score", fmt.Sprintf("%.3f", res.Brier)),
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}

func verdictTitle(v scoring.Verdict) string {
	switch v {
	case scoring.Overconfident:
		return "Overconfident"
	case scoring.Underconfident:
		return "Underconfident"
	}
	return "Well calibrated"
}

// categories lists per-category accuracy. A round drawn from a single
// category has nothing to compare, so it renders nothing.
func categories(stats []scoring.CategoryStats) string {
	if len(stats) < 2 {
		return ""
	}
	lines := make([]string, 0, len(stats))
	for _, c := range stats {
		name := c.Category
		if name == "" {
			name = "(none)"
		}
		lines = append(lines, fmt.Sprintf("%-20s %3d/%-3d  %5.1f%%  Brier %.3f",
			name, c.Correct, c.Count, c.Accuracy()*100, c.Brier))
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}

func (s *ResultsScreen) coachPanel(w int) string {
	if s.opts.Coach == nil {
		return ""
	}
	switch s.coach {
	case coachLoading:
		return s.spin.View() + " " + theme.Hint.Render("Asking "+s.opts.Coach.Model()+" for feedback…")
	case coachFailed:
		return theme.ErrorText.Render("Coach unavailable: "+s.coachErr.Error()) + "\n" +
			theme.Hint.Render("Press c to try again.")
	case coachReady:
		fb := s.feedback
		lines := []string{theme.Title.Render(fb.Headline), ""}
		for _, o := range fb.Observations {
			lines = append(lines, "• "+o)
		}
		if fb.Tip != "" {
			lines = append(lines, "", theme.Label.Render("TIP ")+fb.Tip)
		}
		return theme.Card.Width(w).Render(strings.Join(lines, "\n"))
	}
	return theme.Hint.Render("Press c for feedback from your coach.")
}

func (s *ResultsScreen) exportLine() string {
	switch {
	case s.opts.ExportErr != nil:
		return theme.ErrorText.Render("Export failed: " + s.opts.ExportErr.Error())
	case s.opts.Exported != nil:
		return theme.Hint.Render("Saved " + s.opts.Exported.Responses + "\nSaved " + s.opts.Exported.Chart)
	}
	return ""
}
