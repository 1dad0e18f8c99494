package app

import (
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/planner"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/internal/volume"
)

// Default display window, roughly contrast-enhanced CT
const (
	defaultWindowCenter = 200
	defaultWindowWidth  = 800
)

// App is the raylib planning host: three MPR panels plus a 3D
// overview, all driven by one Planner.
type App struct {
	cfg config.Config
	log *log.Logger

	vol     *volume.Volume
	planner *planner.Planner

	panels       map[string]*slicePanel
	panelOrder   []string
	overviewRect rl.Rectangle

	overviewTex      rl.RenderTexture2D
	overviewTexValid bool

	orbit       OrbitCameraState
	interaction InteractionState
	ui          UIState
	font        rl.Font
}

// Run opens the planning window over a loaded volume and blocks until
// the window closes. Configurations sent on reload are applied between
// frames; a nil channel disables hot reload.
func Run(cfg config.Config, vol *volume.Volume, logger *log.Logger, reload <-chan config.Config) error {
	if logger == nil {
		logger = log.Default()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, "taviplan")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	// ESC clears the active tool; it must not double as raylib's exit key
	rl.SetExitKey(0)

	app, err := newApp(cfg, vol, logger)
	if err != nil {
		return err
	}
	defer app.unload()

	for !rl.WindowShouldClose() {
		select {
		case next := <-reload:
			app.applyConfig(next)
		default:
		}
		app.layoutPanels()
		app.handleInput()
		app.draw()
	}
	return nil
}

func (app *App) applyConfig(cfg config.Config) {
	app.cfg = cfg
	app.planner.ApplyConfig(cfg)
	for _, p := range app.panels {
		p.dirty = true
	}
	app.setStatus("configuration reloaded")
}

func newApp(cfg config.Config, vol *volume.Volume, logger *log.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		log:    logger,
		vol:    vol,
		panels: make(map[string]*slicePanel),
		font:   rl.GetFontDefault(),
	}

	center := vol.Center()
	extent := vol.Extent()

	app.addPanel(newSlicePanel(PanelAxial,
		sliceCameraAxial(center, extent), vol, defaultWindowCenter, defaultWindowWidth))
	app.addPanel(newSlicePanel(PanelSagittal,
		sliceCameraSagittal(center, extent), vol, defaultWindowCenter, defaultWindowWidth))
	app.addPanel(newSlicePanel(PanelCoronal,
		sliceCameraCoronal(center, extent), vol, defaultWindowCenter, defaultWindowWidth))

	views, err := viewport.NewSet(PanelAxial,
		app.panels[PanelAxial], app.panels[PanelSagittal], app.panels[PanelCoronal])
	if err != nil {
		return nil, err
	}

	app.planner = planner.New(cfg, views, vol, logger)
	app.planner.SetOnError(func(err error) {
		app.setStatus(err.Error())
	})
	app.planner.Activate(center)

	app.resetOrbitCamera()
	app.ui.showHelp = true
	return app, nil
}

func (app *App) addPanel(p *slicePanel) {
	app.panels[p.id] = p
	app.panelOrder = append(app.panelOrder, p.id)
}

// layoutPanels arranges the 2x2 grid for the current window size
func (app *App) layoutPanels() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight() - statusBarHeight)
	halfW, halfH := w/2, h/2

	app.panels[PanelAxial].setRect(rl.Rectangle{X: 0, Y: 0, Width: halfW, Height: halfH})
	app.panels[PanelSagittal].setRect(rl.Rectangle{X: halfW, Y: 0, Width: halfW, Height: halfH})
	app.panels[PanelCoronal].setRect(rl.Rectangle{X: 0, Y: halfH, Width: halfW, Height: halfH})
	app.overviewRect = rl.Rectangle{X: halfW, Y: halfH, Width: halfW, Height: halfH}
}

func (app *App) setStatus(text string) {
	app.ui.statusText = text
	app.ui.statusFrames = 240
}

func (app *App) unload() {
	for _, p := range app.panels {
		p.unload()
	}
	if app.overviewTexValid {
		rl.UnloadRenderTexture(app.overviewTex)
		app.overviewTexValid = false
	}
}
