package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Memory", []Series{
		{Name: "Score", Values: []float64{60, 70, 80, 70, 60}},
		{Name: "Fit", Values: []float64{65, 66, 67, 68, 69}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected title, 4 rows and legend, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Memory" {
		t.Fatalf("title = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "100 │ ") || !strings.HasPrefix(lines[3], " 50 │ ") || !strings.HasPrefix(lines[4], "  0 │ ") {
		t.Fatalf("unexpected axis labels:\n%s", buf.String())
	}
	if !strings.Contains(lines[5], "Score (solid)") || !strings.Contains(lines[5], "Fit (dashed)") {
		t.Fatalf("unexpected legend: %q", lines[5])
	}
}

func TestPlotSeriesFixedScale(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", []Series{{Name: "Top", Values: []float64{150, 100}}}, minPlotWidth, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "100 │ ⠉") {
		t.Fatalf("top row should be lit: %q", lines[0])
	}
	if lines[3] != "  0 │ "+strings.Repeat("\u2800", minPlotWidth) {
		t.Fatalf("bottom row should be empty: %q", lines[3])
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Nothing", []Series{{Name: "A"}}, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 74 {
		t.Fatalf("PlotWidthFor(80) = %d, want 74", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("PlotWidthFor(5) = %d, want %d", got, minPlotWidth)
	}
}

func TestResample(t *testing.T) {
	up := resample([]float64{0, 100}, 3)
	if up[0] != 0 || up[1] != 50 || up[2] != 100 {
		t.Fatalf("upsample = %v", up)
	}
	down := resample([]float64{10, 20, 30, 40}, 2)
	if down[0] != 15 || down[1] != 35 {
		t.Fatalf("downsample = %v", down)
	}
}
