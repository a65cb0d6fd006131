package sysinfo

import (
	"fmt"
	"strings"
)

// HistorySize is the number of CPU samples kept for the graph.
const HistorySize = 10

var bars = []rune("▁▂▃▄▅▆▇█")

// History keeps the most recent CPU usage samples.
type History struct {
	samples []float64
}

// Add appends a sample, dropping the oldest once HistorySize is reached.
func (h *History) Add(usage float64) {
	if len(h.samples) >= HistorySize {
		h.samples = h.samples[1:]
	}
	h.samples = append(h.samples, clampPercent(usage))
}

// Samples returns the stored samples, oldest first.
func (h *History) Samples() []float64 {
	return append([]float64(nil), h.samples...)
}

// Graph returns a fixed-width bar graph with the latest percentage, so the
// status line never shifts as samples arrive.
func (h *History) Graph() string {
	current := 0.0
	if len(h.samples) > 0 {
		current = h.samples[len(h.samples)-1]
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", HistorySize-len(h.samples)))
	for _, usage := range h.samples {
		// 100/8 = 12.5
		level := min(int(usage/12.5), len(bars)-1)
		sb.WriteRune(bars[level])
	}

	return fmt.Sprintf("CPU:%s %3.0f%%", sb.String(), current)
}
