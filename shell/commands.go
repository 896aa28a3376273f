package shell

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/ui/presenter"
)

func commandTable() map[string]command {
	quit := command{usage: "quit", help: "close the window and exit", run: cmdQuit}
	return map[string]command{
		"help":   {usage: "help", help: "list commands", run: cmdHelp},
		"show":   {usage: "show", help: "show the window", run: cmdShow},
		"hide":   {usage: "hide", help: "hide the window (Escape does the same)", run: cmdHide},
		"title":  {usage: "title [TEXT]", help: "print or set the window title", run: cmdTitle},
		"status": {usage: "status", help: "print the status line", run: cmdStatus},
		"info":   {usage: "info", help: "summarise the window state", run: cmdInfo},
		"vars":   {usage: "vars", help: "list live bindings", run: cmdVars},
		"get":    {usage: "get NAME", help: "print a binding", run: cmdGet},
		"set":    {usage: "set NAME VALUE", help: "change a writable binding", run: cmdSet},
		"load":   {usage: "load PATH|URL", help: "display another image", run: cmdLoad},
		"grab":   {usage: "grab", help: "display a capture of the screen", run: cmdGrab},
		"zoom":   {usage: "zoom in|out|FACTOR", help: "zoom about the centre", run: cmdZoom},
		"reset":  {usage: "reset", help: "fit the image into the window", run: cmdReset},
		"map":    {usage: "map VY VX", help: "map a window position to image pixels", run: cmdMap},
		"faces":  {usage: "faces [CASCADE]", help: "detect faces in the displayed image", run: cmdFaces},
		"theme":  {usage: "theme [light|dark]", help: "print or switch the colour theme", run: cmdTheme},
		"quit":   quit,
		"exit":   quit,
	}
}

func cmdHelp(_ context.Context, s *Shell, _ []string) error {
	names := make([]string, 0, len(s.commands))
	for n := range s.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(s.style.title.Render("Commands:"))
	b.WriteByte('\n')
	for _, n := range names {
		c := s.commands[n]
		fmt.Fprintf(&b, "  %s %s\n", s.style.cmd.Render(fmt.Sprintf("%-20s", c.usage)), c.help)
	}
	b.WriteString(s.style.muted.Render("Keys: Escape hides or quits, +/- zoom, r resets, drag pans."))
	b.WriteByte('\n')
	s.printf("%s", b.String())
	return nil
}

func cmdQuit(ctx context.Context, s *Shell, _ []string) error {
	s.quit(ctx)
	return errQuit
}

func cmdShow(ctx context.Context, s *Shell, _ []string) error {
	if err := s.needTarget(); err != nil {
		return err
	}
	return s.ui(ctx, s.deps.Target.Show)
}

func cmdHide(ctx context.Context, s *Shell, _ []string) error {
	if err := s.needTarget(); err != nil {
		return err
	}
	return s.ui(ctx, s.deps.Target.Hide)
}

func cmdTitle(ctx context.Context, s *Shell, args []string) error {
	if len(args) > 0 {
		return cmdSet(ctx, s, append([]string{"title"}, args...))
	}
	return cmdGet(ctx, s, []string{"title"})
}

func cmdStatus(ctx context.Context, s *Shell, _ []string) error {
	return cmdGet(ctx, s, []string{"status"})
}

func cmdInfo(ctx context.Context, s *Shell, _ []string) error {
	if err := s.needTarget(); err != nil {
		return err
	}
	var b strings.Builder
	err := s.ui(ctx, func() {
		t := s.deps.Target
		fmt.Fprintf(&b, "path:      %s\n", t.Path())
		fmt.Fprintf(&b, "title:     %s\n", t.Title())
		fmt.Fprintf(&b, "mode:      %s\n", t.Mode())
		fmt.Fprintf(&b, "size:      %s\n", t.ImageSize())
		fmt.Fprintf(&b, "placement: %s\n", t.Placement())
		fmt.Fprintf(&b, "zoom:      %.4g\n", t.Zoom())
		fmt.Fprintf(&b, "visible:   %t\n", t.Visible())
	})
	if err != nil {
		return err
	}
	s.printf("%s", b.String())
	return nil
}

func cmdVars(ctx context.Context, s *Shell, _ []string) error {
	var b strings.Builder
	err := s.ui(ctx, func() {
		for _, n := range s.bindings.Names() {
			bd, _ := s.bindings.Lookup(n)
			mark := "rw"
			if bd.ReadOnly() {
				mark = "ro"
			}
			fmt.Fprintf(&b, "%-10s %s  %s\n", n, s.style.muted.Render(mark), bd.Get())
		}
	})
	if err != nil {
		return err
	}
	s.printf("%s", b.String())
	return nil
}

func cmdGet(ctx context.Context, s *Shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: get NAME", ErrUsage)
	}
	var v string
	var gerr error
	if err := s.ui(ctx, func() { v, gerr = s.bindings.Get(args[0]) }); err != nil {
		return err
	}
	if gerr != nil {
		return gerr
	}
	s.printf("%s\n", v)
	return nil
}

func cmdSet(ctx context.Context, s *Shell, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: set NAME VALUE", ErrUsage)
	}
	value := strings.Join(args[1:], " ")
	var serr error
	if err := s.ui(ctx, func() { serr = s.bindings.Set(args[0], value) }); err != nil {
		return err
	}
	return serr
}

func cmdLoad(ctx context.Context, s *Shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: load PATH|URL", ErrUsage)
	}
	if err := s.needTarget(); err != nil {
		return err
	}
	if s.deps.Load == nil {
		return errors.New("shell: loading is not available")
	}
	img, err := s.deps.Load(ctx, args[0])
	if err != nil {
		return err
	}
	return s.ui(ctx, func() { s.deps.Target.UpdateView(img, args[0]) })
}

func cmdGrab(ctx context.Context, s *Shell, _ []string) error {
	if err := s.needTarget(); err != nil {
		return err
	}
	if s.deps.Grab == nil {
		return errors.New("shell: screen capture is not available")
	}
	img, err := s.deps.Grab()
	if err != nil {
		return err
	}
	return s.ui(ctx, func() { s.deps.Target.UpdateView(img, "screen.png") })
}

func cmdZoom(ctx context.Context, s *Shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: zoom in|out|FACTOR", ErrUsage)
	}
	if err := s.needTarget(); err != nil {
		return err
	}
	t := s.deps.Target
	var apply func()
	switch args[0] {
	case "in":
		apply = func() { t.ZoomBy(s.deps.ZoomStep) }
	case "out":
		apply = func() { t.ZoomBy(1 / s.deps.ZoomStep) }
	default:
		f, err := parseZoom(args[0])
		if err != nil {
			return err
		}
		apply = func() { t.SetZoom(f) }
	}
	var z float64
	if err := s.ui(ctx, func() { apply(); z = t.Zoom() }); err != nil {
		return err
	}
	s.printf("zoom %.4g\n", z)
	return nil
}

func cmdReset(ctx context.Context, s *Shell, _ []string) error {
	if err := s.needTarget(); err != nil {
		return err
	}
	return s.ui(ctx, s.deps.Target.ResetView)
}

func cmdMap(ctx context.Context, s *Shell, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: map VY VX", ErrUsage)
	}
	if err := s.needTarget(); err != nil {
		return err
	}
	vy, err := parseFloat("VY", args[0])
	if err != nil {
		return err
	}
	vx, err := parseFloat("VX", args[1])
	if err != nil {
		return err
	}
	view := geometry.ViewPos{X: vx, Y: vy}
	var scene geometry.ScenePos
	if err := s.ui(ctx, func() { scene = s.deps.Target.MapViewToScene(view) }); err != nil {
		return err
	}
	s.printf("%s\n", presenter.FormatStatus(view, scene))
	return nil
}

func cmdFaces(ctx context.Context, s *Shell, args []string) error {
	if err := s.needTarget(); err != nil {
		return err
	}
	cascade := s.deps.Cascade
	if len(args) > 0 {
		cascade = args[0]
	}
	if cascade == "" {
		return fmt.Errorf("%w: faces CASCADE (no cascade configured)", ErrUsage)
	}
	if s.deps.Detect == nil {
		return errors.New("shell: face detection is not available")
	}
	var img image.Image
	if err := s.ui(ctx, func() { img = s.deps.Target.Image() }); err != nil {
		return err
	}
	found, err := s.deps.Detect(img, cascade)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		s.printf("no faces\n")
		return nil
	}
	for i, f := range found {
		s.printf("face %d: row %d col %d size %d score %.1f\n", i+1, f.Row, f.Col, f.Size, f.Score)
	}
	return nil
}

func cmdTheme(ctx context.Context, s *Shell, args []string) error {
	if len(args) == 0 {
		return cmdGet(ctx, s, []string{"theme"})
	}
	return cmdSet(ctx, s, []string{"theme", args[0]})
}
