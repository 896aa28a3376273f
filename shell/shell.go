// Package shell implements the interactive command loop that runs next to the
// viewer window. It reads commands on its own goroutine and runs everything
// that touches the window on the UI thread through Deps.Call.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/soocke/tkview/domain/faces"
	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/domain/runmode"
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("shell: unknown command")
	// ErrUsage is returned for commands given the wrong arguments.
	ErrUsage = errors.New("shell: usage")
)

// Target is the window state the shell drives. Methods are called on the UI thread.
type Target interface {
	Show()
	Hide()
	Visible() bool
	Quit()

	Title() string
	SetTitle(string)
	Status() string
	SetStatus(string)
	Path() string
	Mode() runmode.Mode
	Placement() geometry.Placement
	// Geometry is the current window manager geometry, which may differ
	// from Placement once the user moves or resizes the window.
	Geometry() (geometry.Placement, error)
	Image() image.Image
	ImageSize() geometry.Size
	UpdateView(img image.Image, path string)

	Zoom() float64
	SetZoom(float64)
	ZoomBy(float64)
	ResetView()
	MapViewToScene(geometry.ViewPos) geometry.ScenePos

	Theme() string
	SetTheme(string) error
}

// Deps are the collaborators of a Shell.
type Deps struct {
	Target Target
	// Call runs fn on the UI thread and waits for it.
	Call func(ctx context.Context, fn func()) error
	// Load fetches and decodes an image. It runs on the shell goroutine.
	Load func(ctx context.Context, src string) (image.Image, error)
	// Grab captures the screen. It runs on the shell goroutine.
	Grab func() (image.Image, error)
	// Detect finds faces in img using the cascade file at path.
	Detect func(img image.Image, cascade string) ([]faces.Face, error)
	// Cascade is the default cascade path for the faces command.
	Cascade  string
	ZoomStep float64
	Logger   *slog.Logger
}

// Shell is a line-oriented command loop.
type Shell struct {
	in       io.Reader
	out      io.Writer
	mu       sync.Mutex // guards out
	deps     Deps
	bindings *Bindings
	style    styles
	prompt   string
	commands map[string]command
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, s *Shell, args []string) error
}

// errQuit ends Run after the quit request has been posted.
var errQuit = errors.New("quit")

// New builds a shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, deps Deps) *Shell {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.ZoomStep <= 1 {
		deps.ZoomStep = 1.25
	}
	if deps.Call == nil {
		deps.Call = func(_ context.Context, fn func()) error { fn(); return nil }
	}
	s := &Shell{in: in, out: out, deps: deps, style: newStyles(out), prompt: "tkview> "}
	// Piped scripts get no prompts.
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		s.prompt = ""
	}
	if deps.Target != nil {
		s.bindings = TargetBindings(deps.Target)
	} else {
		s.bindings = NewBindings()
	}
	s.commands = commandTable()
	return s
}

// Bindings returns the live binding set.
func (s *Shell) Bindings() *Bindings { return s.bindings }

// Run reads and executes commands until quit, EOF or ctx is done. Quit and
// EOF post a quit request to the window.
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.printf("%s\n", s.style.title.Render("Interactive mode. Type 'help' for commands."))
	for {
		s.printf("%s", s.prompt)
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			s.printf("\n")
			s.quit(ctx)
			return err
		case line := <-lines:
			err := s.Execute(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				s.printf("%s\n", s.style.err.Render("error: "+err.Error()))
				s.deps.Logger.Debug("command failed", "line", line, "error", err)
			}
		}
	}
}

// Interrupt reports a SIGINT delivered while the shell owns the terminal.
// The loop keeps running. Safe for concurrent use.
func (s *Shell) Interrupt() {
	s.printf("^C\n%s", s.prompt)
}

// Execute runs one command line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.run(ctx, s, fields[1:])
}

func (s *Shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// ui runs fn on the UI thread.
func (s *Shell) ui(ctx context.Context, fn func()) error {
	return s.deps.Call(ctx, fn)
}

func (s *Shell) quit(ctx context.Context) {
	if s.deps.Target == nil {
		return
	}
	if err := s.ui(ctx, s.deps.Target.Quit); err != nil {
		s.deps.Logger.Debug("quit request not delivered", "error", err)
	}
}

func (s *Shell) needTarget() error {
	if s.deps.Target == nil {
		return errors.New("shell: no window attached")
	}
	return nil
}

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrUsage, name, v)
	}
	return f, nil
}
