package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/chart"
)

// SpecMarkdown renders a chart spec and any data it carries.
func SpecMarkdown(s chart.Spec) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[CHART] %s: %s\n", s.Kind, s.Title))
	if s.X != "" {
		b.WriteString(fmt.Sprintf("- x: %s\n", safeName(s.X)))
	}
	if len(s.Y) > 0 {
		b.WriteString(fmt.Sprintf("- y: %s\n", nameList(s.Y)))
	}
	if s.Color != "" {
		b.WriteString(fmt.Sprintf("- color: %s\n", safeName(s.Color)))
	}
	if s.Size != "" {
		b.WriteString(fmt.Sprintf("- size: %s\n", safeName(s.Size)))
	}
	if s.Agg != chart.AggNone {
		b.WriteString(fmt.Sprintf("- aggregation: %s\n", s.Agg))
	}
	if s.Bins > 0 {
		b.WriteString(fmt.Sprintf("- bins: %d\n", s.Bins))
	}

	for _, ser := range s.Series {
		b.WriteString(fmt.Sprintf("\n| %s | %s |\n| --- | --- |\n", safeVal(axisLabel(s.X)), safeVal(ser.Name)))
		for _, p := range ser.Points {
			b.WriteString(fmt.Sprintf("| %s | %s |\n", safeVal(p.X), formatNum(p.Y)))
		}
	}
	if len(s.Steps) > 0 {
		b.WriteString("\n| step | measure | value |\n| --- | --- | --- |\n")
		for _, st := range s.Steps {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", safeVal(st.Label), st.Measure, formatNum(st.Value)))
		}
	}
	return b.String()
}

func axisLabel(x string) string {
	if x == "" {
		return "x"
	}
	return x
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'g', 10, 64) }
