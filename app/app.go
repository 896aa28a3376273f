package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/soocke/tkview/capture"
	"github.com/soocke/tkview/config"
	"github.com/soocke/tkview/debug"
	"github.com/soocke/tkview/domain/faces"
	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/domain/runmode"
	"github.com/soocke/tkview/shell"
	"github.com/soocke/tkview/ui/images"
	"github.com/soocke/tkview/ui/presenter"
	"github.com/soocke/tkview/ui/theme"
	"github.com/soocke/tkview/ui/view"
)

// App runs the viewer window under the run mode chosen at startup.
type App struct {
	c      *AppContainer
	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp loads the input and prepares the application. Nothing is shown yet.
func NewApp(ctx context.Context, input string, cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(ctx)
	c, err := BuildContainer(ctx, input, cfg, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	return &App{c: c, ctx: ctx, cancel: cancel}, nil
}

// Start builds the window, shows it and blocks in the Tk event loop until the
// window is destroyed.
func (a *App) Start() {
	c := a.c
	defer a.cancel()
	defer c.Dispatch.Close()

	c.Surface = view.NewImageSurface(c.Image, c.Viewport, c.Config.ZoomStep, theme.SurfaceColor(), c.Logger)
	c.RootView.Build(c.Surface, view.Handlers{
		OnPointerMove: func(p geometry.ViewPos) { c.Viewer.OnPointerMove(p) },
		OnTerminate:   func() { c.Viewer.OnTerminate() },
	})
	if c.Config.Theme == theme.Dark {
		c.RootView.ApplyTheme(true)
	}

	c.Viewer = presenter.NewViewer(c.Image, c.Input, c.Mode, presenter.ViewerDeps{
		Window:  c.RootView,
		Surface: c.Surface,
		Logger:  c.Logger,
	})

	interval := time.Duration(c.Config.PollIntervalMS) * time.Millisecond
	c.Loop = presenter.NewLoop(c.Dispatch, c.Viewer.Controller(), nil)
	c.Loop.Schedule = func() { c.RootView.Schedule(interval, c.Loop.Tick) }

	if err := c.Viewer.Controller().InstallInterruptBridge(a.ctx, os.Stderr); err != nil {
		c.Logger.Warn("interrupt bridge not installed", "error", err)
	}
	if c.Config.Debug {
		debug.StartGoroutineLogger(a.ctx, 5*time.Second, c.Logger)
		debug.StartMemLogger(a.ctx, 5*time.Second, c.Logger)
	}

	if c.Mode == runmode.Interactive {
		sh := a.newShell()
		go func() {
			if err := sh.Run(a.ctx); err != nil {
				c.Logger.Error("shell stopped", "error", err)
			}
		}()
		a.forwardInterrupts(sh)
	}

	c.Viewer.Show()
	c.Loop.Schedule()
	c.RootView.Wait()
	c.Logger.Debug("event loop finished")
}

// forwardInterrupts keeps SIGINT from ending an interactive session.
func (a *App) forwardInterrupts(sh *shell.Shell) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-a.ctx.Done():
				return
			case <-ch:
				sh.Interrupt()
			}
		}
	}()
}

func (a *App) newShell() *shell.Shell {
	c := a.c
	return shell.New(os.Stdin, os.Stdout, shell.Deps{
		Target: &shellTarget{Viewer: c.Viewer, rv: c.RootView},
		Call:   c.Dispatch.Call,
		Load: func(ctx context.Context, src string) (image.Image, error) {
			return images.Load(ctx, src, loadOptions(c.Config))
		},
		Grab: func() (image.Image, error) {
			img, err := capture.Grab()
			if err != nil {
				return nil, err
			}
			return img, nil
		},
		Detect:   newFaceFinder().detect,
		Cascade:  c.Config.Cascade,
		ZoomStep: c.Config.ZoomStep,
		Logger:   c.Logger,
	})
}

// shellTarget adds theme switching to the viewer for the shell.
type shellTarget struct {
	*presenter.Viewer
	rv *view.RootView
}

func (t *shellTarget) Geometry() (geometry.Placement, error) { return t.rv.Geometry() }

func (t *shellTarget) Theme() string { return theme.ModeName(theme.IsDark()) }

func (t *shellTarget) SetTheme(name string) error {
	dark, err := theme.ParseMode(name)
	if err != nil {
		return err
	}
	t.rv.ApplyTheme(dark)
	return nil
}

// faceFinder caches the unpacked cascade between faces commands.
type faceFinder struct {
	mu       sync.Mutex
	path     string
	detector *faces.Detector
}

func newFaceFinder() *faceFinder { return &faceFinder{} }

func (f *faceFinder) detect(img image.Image, cascade string) ([]faces.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detector == nil || f.path != cascade {
		d, err := faces.LoadDetector(cascade)
		if err != nil {
			return nil, fmt.Errorf("cascade %s: %w", cascade, err)
		}
		f.detector, f.path = d, cascade
	}
	return f.detector.Detect(img), nil
}
