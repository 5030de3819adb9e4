package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickloop/engine"
)

// PerformanceStats shows the measured loop rates, per-loop execution timings
// and the host's own frame times. The rate inputs change the engine's target
// rates live.
type PerformanceStats struct {
	engine *engine.Engine
	timer  *FrameTimer

	frames  *History
	tps     *History
	fps     *History
	sampled time.Time

	tickRate  int32
	frameRate int32
}

func NewPerformanceStats(e *engine.Engine, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		engine:    e,
		timer:     NewFrameTimer(),
		frames:    NewHistory(historyFrames),
		tps:       NewHistory(60),
		fps:       NewHistory(60),
		tickRate:  int32(e.TickRate()),
		frameRate: int32(e.FrameRate()),
	}
}

func (ps *PerformanceStats) Render() {
	ps.frames.Push(ps.timer.GetDeltaTime() * 1000.0)
	if now := time.Now(); now.Sub(ps.sampled) >= time.Second {
		ps.sampled = now
		ps.tps.Push(float32(ps.engine.DebugTPS()))
		ps.fps.Push(float32(ps.engine.DebugFPS()))
	}

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	diagnostics := ps.engine.Scheduler().Diagnostics()
	if imgui.Checkbox("Diagnostics", &diagnostics) {
		ps.engine.SetDiagnostics(diagnostics)
	}
	if diagnostics {
		imgui.Text(fmt.Sprintf("TPS: %d / %d", ps.engine.DebugTPS(), ps.engine.TickRate()))
		imgui.PlotLinesFloatPtr("##tps", ps.tps.First(), int32(ps.tps.Len()))
		imgui.Text(fmt.Sprintf("FPS: %d / %d", ps.engine.DebugFPS(), ps.engine.FrameRate()))
		imgui.PlotLinesFloatPtr("##fps", ps.fps.First(), int32(ps.fps.Len()))
	}

	imgui.SetNextItemWidth(120)
	if imgui.InputInt("Tick rate", &ps.tickRate) && ps.tickRate > 0 {
		_ = ps.engine.SetTickRate(int(ps.tickRate))
	}
	imgui.SetNextItemWidth(120)
	if imgui.InputInt("Frame rate", &ps.frameRate) && ps.frameRate > 0 {
		_ = ps.engine.SetFrameRate(int(ps.frameRate))
	}

	avg := ps.frames.Average()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Host Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	imgui.PlotLinesFloatPtr("##frametime", ps.frames.First(), int32(ps.frames.Len()))

	stats := ps.engine.Stats()
	if imgui.TreeNodeStr("Loop Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("LoopStatsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Loop")
			imgui.TableSetupColumn("Interval")
			imgui.TableSetupColumn("Executions")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, l := range stats.Loops {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(l.Name)
				imgui.TableNextColumn()
				imgui.Text(l.Interval.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", l.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(l.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(l.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(l.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Input") {
		input := ps.engine.Input()
		imgui.BulletText(fmt.Sprintf("Held keys: %d", input.HeldKeys()))
		imgui.BulletText(fmt.Sprintf("Held buttons: %d", input.HeldButtons()))
		imgui.TreePop()
	}

	imgui.End()
}

// History is a fixed-size ring of samples laid out for ImGui's plot widgets.
type History struct {
	samples []float32
	next    int
	filled  bool
}

func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

func (h *History) Len() int { return len(h.samples) }

// First points at the backing array as PlotLinesFloatPtr expects.
func (h *History) First() *float32 { return &h.samples[0] }

// Average is the mean of the samples pushed so far.
func (h *History) Average() float32 {
	n := h.next
	if h.filled {
		n = len(h.samples)
	}
	if n == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:n] {
		sum += v
	}
	return sum / float32(n)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
