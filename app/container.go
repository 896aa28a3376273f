package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/tkview/config"
	"github.com/soocke/tkview/domain/runmode"
	"github.com/soocke/tkview/ui/images"
	"github.com/soocke/tkview/ui/presenter"
	"github.com/soocke/tkview/ui/view"
	"github.com/soocke/tkview/ui/viewport"
)

// AppContainer assembles the components that do not need Tk yet.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Mode     runmode.Mode
	Input    string
	Image    image.Image
	Viewport *viewport.Viewport
	Dispatch *presenter.Dispatcher
	RootView *view.RootView

	// Built on the UI thread by App.Start.
	Surface *view.ImageSurface
	Viewer  *presenter.Viewer
	Loop    *presenter.Loop
}

// BuildContainer loads the input image and constructs the UI-independent parts.
// Side effects are limited to reading or downloading the image.
func BuildContainer(ctx context.Context, input string, cfg *config.Config, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger, Input: input, Mode: runmode.FromFlag(cfg.Interactive)}
	img, err := images.Load(ctx, input, loadOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	c.Image = img
	c.Viewport = viewport.New(cfg.MinZoom, cfg.MaxZoom)
	c.Dispatch = presenter.NewDispatcher(16, logger)
	c.RootView = view.NewRootView(logger)
	return c, nil
}

func loadOptions(cfg *config.Config) images.LoadOptions {
	return images.LoadOptions{
		Timeout:  time.Duration(cfg.DownloadTimeoutS) * time.Second,
		Progress: os.Stderr,
	}
}
