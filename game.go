package main

import (
	"fmt"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/common"
	"github.com/milk9111/flycam/config"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
	"github.com/milk9111/flycam/ecs/entity"
	"github.com/milk9111/flycam/ecs/system"
)

type Game struct {
	frames int
	debug  bool

	world  *ecs.World
	camera ecs.Entity
	pause  *ebitenui.UI
	pacer  *common.FramePacer

	width, height int
}

func NewGame(cfg *config.Config, debug bool) (*Game, error) {
	cursor := ebitenCursor{}

	world := ecs.NewWorld()
	cam, err := entity.LoadScene(world, cfg, cursor)
	if err != nil {
		return nil, err
	}

	input, err := system.NewInputSystem(cfg)
	if err != nil {
		return nil, err
	}
	world.AddSystem(input)
	world.AddSystem(system.NewCaptureSystem())
	world.AddSystem(system.NewFlyControlSystem())
	world.AddSystem(system.NewPoseClipboardSystem())
	world.AddSystem(system.NewRenderSystem())

	g := &Game{
		debug:  debug,
		world:  world,
		camera: cam,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}

	g.pause = NewPauseUI(g.width, g.height)

	if !cfg.Frame.VSync {
		g.pacer = common.NewFramePacer(cfg.Frame.TargetRate, cfg.Frame.SleepGranularity)
	}

	// The cursor starts captured; the controller assumes so without calling
	// the cursor, so apply it once here.
	if capture, ok := ecs.Get(world, cam, component.CursorCaptureComponent.Kind()); ok && capture.Controller != nil {
		cursor.SetHidden(capture.Controller.Mode() == camera.Captured)
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.world.Update()
	for _, evt := range g.world.Events().Drain() {
		if change, ok := evt.Data.(system.CaptureChange); ok {
			slog.Debug("frame event", "type", evt.Type, "from", change.From, "to", change.To, "frame", g.frames)
		}
	}

	if e, ok := g.world.First(component.QuitRequestComponent.Kind()); ok {
		reason := ""
		if req, ok := ecs.Get(g.world, e, component.QuitRequestComponent.Kind()); ok {
			reason = req.Reason
		}
		slog.Info("quit", "reason", reason, "frames", g.frames)
		return ebiten.Termination
	}

	// The input that released the cursor must not also reach the overlay.
	if g.released() && !g.captureChanged() {
		g.pause.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)

	if g.released() {
		g.pause.Draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}

	g.pacer.Wait()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func (g *Game) released() bool {
	capture, ok := ecs.Get(g.world, g.camera, component.CursorCaptureComponent.Kind())
	return ok && capture.Controller != nil && capture.Controller.Mode() == camera.Released
}

func (g *Game) captureChanged() bool {
	capture, ok := ecs.Get(g.world, g.camera, component.CursorCaptureComponent.Kind())
	return ok && capture.ChangedThisFrame
}

func (g *Game) debugText() string {
	mode := "fixed"
	if capture, ok := ecs.Get(g.world, g.camera, component.CursorCaptureComponent.Kind()); ok && capture.Controller != nil {
		mode = capture.Controller.Mode().String()
	}
	var pose camera.Pose
	if rig, ok := ecs.Get(g.world, g.camera, component.CameraRigComponent.Kind()); ok {
		pose = rig.Rig.CurrentPose()
	}
	p, f := pose.Position, pose.Forward()
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f  %s\npos: %.2f %.2f %.2f\nfwd: %.2f %.2f %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), mode,
		p.X(), p.Y(), p.Z(), f.X(), f.Y(), f.Z())
}
