package chart

import (
	"fmt"
	"math"
	"strings"
)

// Glyphs used by the text plot.
const (
	GlyphIdeal    = '·'
	GlyphObserved = '●'
	GlyphBoth     = '◉'
)

const (
	textStep     = 5.0 // percent per row
	textColWidth = 7
	textGutter   = 6
)

// Text renders the chart as a small character plot for terminals. The ideal
// diagonal is drawn with GlyphIdeal and observed points with GlyphObserved.
func Text(c Chart) string {
	lo := math.Floor(c.YMin()/textStep) * textStep
	rows := int((AxisMax-lo)/textStep) + 1
	cols := len(c.Ideal)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols*textColWidth))
	}

	col := func(x float64) int {
		for i, p := range c.Ideal {
			if p.X == x {
				return i*textColWidth + textColWidth/2
			}
		}
		return -1
	}
	row := func(y float64) int {
		r := int(math.Round((AxisMax - y) / textStep))
		if r < 0 {
			r = 0
		}
		if r >= rows {
			r = rows - 1
		}
		return r
	}

	for _, p := range c.Ideal {
		if x := col(p.X); x >= 0 {
			grid[row(p.Y)][x] = GlyphIdeal
		}
	}
	for _, p := range c.Observed {
		x := col(p.X)
		if x < 0 {
			continue
		}
		r := row(p.Y)
		if grid[r][x] == GlyphIdeal {
			grid[r][x] = GlyphBoth
		} else {
			grid[r][x] = GlyphObserved
		}
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		y := AxisMax - float64(r)*textStep
		label := strings.Repeat(" ", textGutter-1)
		if int(y)%10 == 0 {
			label = fmt.Sprintf("%*d", textGutter-2, int(y)) + " "
		}
		b.WriteString(label)
		b.WriteString("┤")
		b.WriteString(strings.TrimRight(string(grid[r]), " "))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", textGutter-1))
	b.WriteString("└")
	for range c.Ideal {
		b.WriteString(strings.Repeat("─", textColWidth/2))
		b.WriteString("┬")
		b.WriteString(strings.Repeat("─", textColWidth-textColWidth/2-1))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", textGutter))
	for _, p := range c.Ideal {
		b.WriteString(fmt.Sprintf("%*d%s", textColWidth/2+1, int(p.X), strings.Repeat(" ", textColWidth-textColWidth/2-1)))
	}
	return strings.TrimRight(b.String(), " ")
}
