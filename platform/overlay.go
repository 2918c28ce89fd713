package platform

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/ecs/debugui"
	debugui_ebiten "github.com/plus3/pong/ecs/debugui/ebiten"
	"github.com/plus3/pong/game"
	"github.com/plus3/pong/pong"
)

// Overlay is the ImGui debug layer. It keeps its own small world of window
// entities and inspects the game's world.
type Overlay struct {
	backend   *debugui_ebiten.ImguiBackend
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[debugui.ImguiInputState]
}

func NewOverlay(g *game.Game, title string) *Overlay {
	backend := debugui_ebiten.NewImguiBackend(title, int(pong.ScreenWidth), int(pong.ScreenHeight))

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	input := ecs.NewSingleton[debugui.ImguiInputState](storage)

	inspector := debugui.NewInspector(g.Storage())
	perf := debugui.NewPerformancePanel(g.Storage(), 120,
		debugui.ScheduleSource{Name: "Update systems", Stats: g.UpdateStats},
		debugui.ScheduleSource{Name: "Draw systems", Stats: g.DrawStats},
	)
	storage.Spawn(debugui.ImguiItem{Render: inspector.Render})
	storage.Spawn(debugui.ImguiItem{Render: perf.Render})
	storage.Spawn(debugui.ImguiItem{Render: func() { renderMatch(g) }})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	return &Overlay{
		backend:   backend,
		scheduler: scheduler,
		input:     input,
	}
}

// Update builds this tick's ImGui frame.
func (o *Overlay) Update(dt float64) {
	o.backend.BeginFrame()
	o.scheduler.Once(dt)
	o.backend.EndFrame()
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

func renderMatch(g *game.Game) {
	if !imgui.BeginV("Match", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := g.Snapshot()
	imgui.Text(fmt.Sprintf("Time: %s", snap.Now.Truncate(time.Millisecond)))
	imgui.Text(fmt.Sprintf("Score: %d - %d", snap.Left.Score, snap.Right.Score))
	imgui.Text(fmt.Sprintf("Last outcome: %s", snap.Outcome))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ball: (%.1f, %.1f)  v=(%.1f, %.1f)", snap.Ball.Pos.X, snap.Ball.Pos.Y, snap.Ball.Vel.X, snap.Ball.Vel.Y))
	if snap.Ball.Paused(snap.Now) {
		imgui.Text(fmt.Sprintf("Serving in %s", (snap.Ball.ResumeAt - snap.Now).Truncate(time.Millisecond)))
	}
	imgui.Text(fmt.Sprintf("Paddles: left y=%.1f  right y=%.1f", snap.Left.Pos.Y, snap.Right.Pos.Y))

	controls := g.Controls()
	for _, c := range []game.Control{game.LeftUp, game.LeftDown, game.RightUp, game.RightDown} {
		held := controls.Held(c)
		imgui.Checkbox(c.String(), &held)
	}

	imgui.Separator()
	st := snap.Stats
	imgui.Text(fmt.Sprintf("Hits: left %d  right %d", st.LeftHits, st.RightHits))
	imgui.Text(fmt.Sprintf("Walls: %d  Points: %d", st.Walls, st.Points))
	imgui.Text(fmt.Sprintf("Rally: %d  Longest: %d", st.Rally, st.LongestRally))

	imgui.End()
}
