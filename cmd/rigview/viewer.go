package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rigcam/ecs/entity"
	"github.com/milk9111/rigcam/ecs/system"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/milk9111/rigcam/scene"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/basicfont"
)

const stepDT = 1.0 / 60

type viewer struct {
	scene   *scene.Scene
	watcher *prefabs.Watcher
	ui      *ebitenui.UI
	face    ebtext.Face
	clip    *clipboardService
	view    view

	paused    bool
	showPanel bool
	status    string
}

func newViewer(s *scene.Scene) *viewer {
	v := &viewer{
		scene: s,
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
		clip:  newClipboardService(),
		view:  fitView(s, screenWidth, screenHeight),
	}
	v.ui = newControlPanel(v)
	return v
}

func (v *viewer) Update() error {
	v.drainWatcher()
	v.handleKeys()
	if v.showPanel {
		v.ui.Update()
	}
	if !v.paused {
		v.scene.Step(stepDT)
	} else if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		v.scene.Step(stepDT)
	}
	return nil
}

func (v *viewer) drainWatcher() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			v.applyChange(change)
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			log.Warn().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

func (v *viewer) applyChange(change prefabs.Change) {
	name := filepath.Base(change.Path)
	switch change.Kind {
	case prefabs.ChangePrefab:
		if name != entity.CameraPrefab {
			return
		}
		v.reload()
	case prefabs.ChangeScript:
		v.scene.Director.Invalidate(name)
		v.setStatus("script " + name + " reloaded")
	}
}

func (v *viewer) reload() {
	if err := system.RequestReload(v.scene.World, entity.CameraPrefab); err != nil {
		log.Error().Err(err).Msg("request reload")
		return
	}
	v.setStatus(entity.CameraPrefab + " reloaded")
}

func (v *viewer) setStatus(s string) {
	v.status = s
	log.Info().Msg(s)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x12, G: 0x14, B: 0x18, A: 0xff})
	v.drawScene(screen)
	v.drawHUD(screen)
	if v.showPanel {
		v.ui.Draw(screen)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (v *viewer) drawHUD(screen *ebiten.Image) {
	lines := []string{fmt.Sprintf("%s  t=%.2f", v.scene.Level.Name, v.scene.World.Time())}
	if _, cr, ok := v.scene.Camera(); ok {
		p := cr.Param
		lines = append(lines,
			fmt.Sprintf("position %s (%s)  rotation %s (%s)", p.PositionMode, p.PositionHoming, p.RotationMode, p.RotationHoming),
			fmt.Sprintf("avoid %v  probes %s  source %s", p.AutoAvoid, cr.Occlusion.Probes, cr.Source),
		)
		if _, frame, ok := v.scene.CameraPose(); ok {
			lines = append(lines, fmt.Sprintf("hits %d  anchored %v", frame.Correction.Hits, frame.Correction.Anchored))
		}
	}
	if v.paused {
		lines = append(lines, "paused (space to resume, . to step)")
	}
	if v.status != "" {
		lines = append(lines, v.status)
	}
	lines = append(lines, "1-4 position  Q/W/E/R/T rotation  H/J homing  A avoid  P probes  C copy  F5 reload  Tab panel")

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	ebtext.Draw(screen, strings.Join(lines, "\n"), v.face, op)
}
