package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pong/ecs"
)

// ScheduleSource names a scheduler whose timings the panel shows.
type ScheduleSource struct {
	Name  string
	Stats func() *ecs.SchedulerStats
}

// PerformancePanel is a window with frame timings, world counts and
// per-system scheduler timings.
type PerformancePanel struct {
	storage   *ecs.Storage
	schedules []ScheduleSource
	history   *FrameHistory
	timer     *FrameTimer
}

func NewPerformancePanel(storage *ecs.Storage, historyFrames int, schedules ...ScheduleSource) *PerformancePanel {
	return &PerformancePanel{
		storage:   storage,
		schedules: schedules,
		history:   NewFrameHistory(historyFrames),
		timer:     NewFrameTimer(),
	}
}

func (p *PerformancePanel) Render() {
	p.history.Push(p.timer.GetDeltaTime() * 1000)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := p.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	values := p.history.Values()
	imgui.PlotLinesFloatPtr("##frametime", &values[0], int32(len(values)))

	for _, source := range p.schedules {
		if imgui.TreeNodeStr(source.Name) {
			renderSchedulerStats(source.Name, source.Stats())
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func renderSchedulerStats(name string, stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV(name+"Table", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.MaxDuration.String())
	}
	imgui.EndTable()
}

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	count   int
}

// NewFrameHistory keeps the last size samples. size is at least 1.
func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.count = min(h.count+1, len(h.samples))
}

// Average is the mean of the recorded samples, or zero when empty.
func (h *FrameHistory) Average() float32 {
	if h.count == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.count] {
		sum += s
	}
	return sum / float32(h.count)
}

// Values returns the backing buffer for plotting. It always has the full
// capacity; unused slots are zero.
func (h *FrameHistory) Values() []float32 {
	return h.samples
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
