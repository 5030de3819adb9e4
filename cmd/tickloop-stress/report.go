package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tickloop/engine"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Entities  int
	TickRate  int
	FrameRate int
	Width     int
	Height    int

	// Results
	TotalTime     time.Duration
	TPS           Samples
	FPS           Samples
	Loops         []engine.LoopStats
	PaintTime     Stats
	SkippedPaints int64
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Samples collects the once-per-second rate measurements.
type Samples struct {
	Values []int
	Min    int
	Max    int
	Avg    float64
}

func (s *Samples) Finalize() {
	if len(s.Values) == 0 {
		return
	}

	total := 0
	s.Min = s.Values[0]
	s.Max = s.Values[0]
	for _, v := range s.Values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		total += v
	}
	s.Avg = float64(total) / float64(len(s.Values))
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tickloop Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Tickables:** {{.Entities}}
- **Target Rates:** {{.TickRate}} TPS / {{.FrameRate}} FPS
- **Resolution:** {{.Width}}x{{.Height}}

## Achieved Rates
- **Total Test Time:** {{.TotalTime}}
- **TPS:** avg {{printf "%.1f" .TPS.Avg}}, min {{.TPS.Min}}, max {{.TPS.Max}} ({{pct .TPS.Avg .TickRate}} of target)
- **FPS:** avg {{printf "%.1f" .FPS.Avg}}, min {{.FPS.Min}}, max {{.FPS.Max}} ({{pct .FPS.Avg .FrameRate}} of target)

## Loop Timings
| Loop | Interval | Executions | Avg | Min | Max |
|---|---|---|---|---|---|
{{- range .Loops}}
| {{.Name}} | {{.Interval}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Paint Passes
- **Completed:** {{len .PaintTime.Samples}}
- **Skipped (paused):** {{.SkippedPaints}}
- **Avg:** {{.PaintTime.Avg}}
- **Min:** {{.PaintTime.Min}}
- **Max:** {{.PaintTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"pct": func(achieved float64, target int) string {
			if target == 0 {
				return "N/A"
			}
			return fmt.Sprintf("%.0f%%", 100*achieved/float64(target))
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
