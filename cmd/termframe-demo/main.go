// Package main is a demo dashboard for the termframe rendering pipeline.
// It renders a rolling sparkline in an inline viewport, pushes log lines
// into the scrollback above it, and live-reloads its theme from the
// config file.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sys/unix"

	"github.com/dshills/termframe/internal/config"
	"github.com/dshills/termframe/internal/renderer/backend"
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
	"github.com/dshills/termframe/internal/renderer/layout"
	"github.com/dshills/termframe/internal/renderer/terminal"
	"github.com/dshills/termframe/internal/renderer/widget"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	duration   time.Duration
}

func run() int {
	opts := parseFlags()

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Live reload is best effort; the demo still runs if the watch
	// cannot be established.
	var reloads <-chan *config.Config
	var reloadErrs <-chan error
	if watcher, werr := config.Watch(path, 0); werr == nil {
		defer watcher.Close()
		reloads = watcher.Configs()
		reloadErrs = watcher.Errors()
	} else {
		fmt.Fprintf(os.Stderr, "Warning: config watch disabled: %v\n", werr)
	}

	term, cleanup, err := setupTerminal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cleanup()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, unix.SIGINT, unix.SIGTERM)

	// A window size change triggers an immediate redraw; the terminal
	// picks up the new size on its next draw.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)

	dash := newDashboard(cfg)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Terminal.FrameRate))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if opts.duration > 0 {
		deadline = time.After(opts.duration)
	}

	for {
		select {
		case <-interrupt:
			return 0
		case <-deadline:
			return 0
		case <-winch:
		case next := <-reloads:
			dash.applyTheme(next)
			dash.logf(term, "config reloaded from %s", path)
		case rerr := <-reloadErrs:
			dash.logf(term, "config reload failed: %v", rerr)
		case <-ticker.C:
			dash.tick(term)
		}

		if err := term.Draw(dash.render); err != nil {
			fmt.Fprintf(os.Stderr, "Error: draw failed: %v\n", err)
			return 1
		}
	}
}

// setupTerminal builds the backend and terminal the config asks for and
// returns a cleanup function restoring the screen.
func setupTerminal(cfg *config.Config) (*terminal.Terminal, func(), error) {
	if cfg.Terminal.Backend == config.BackendTcell {
		tb, err := backend.NewTcell()
		if err != nil {
			return nil, nil, fmt.Errorf("creating tcell backend: %w", err)
		}
		if err := tb.Init(); err != nil {
			return nil, nil, fmt.Errorf("initializing tcell screen: %w", err)
		}
		term, err := terminal.New(tb)
		if err != nil {
			tb.Fini()
			return nil, nil, err
		}
		return term, func() {
			term.Close()
			tb.Fini()
		}, nil
	}

	ab := backend.NewANSITTY(os.Stdout, os.Stdin)

	viewport := terminal.Fullscreen()
	if cfg.Terminal.Viewport == config.ViewportInline {
		// Inline placement queries the cursor position, whose reply
		// arrives on stdin and needs raw mode to be readable.
		if err := ab.EnterRawMode(); err != nil {
			return nil, nil, fmt.Errorf("inline viewport needs a terminal: %w", err)
		}
		viewport = terminal.Inline(cfg.Terminal.InlineHeight)
	}
	term, err := terminal.NewWithOptions(ab, terminal.Options{Viewport: viewport})
	if err != nil {
		ab.ExitRawMode()
		return nil, nil, err
	}
	return term, func() {
		term.Close()
		ab.Flush()
		ab.ExitRawMode()
	}, nil
}

// maxSamples bounds the rolling series.
const maxSamples = 512

// dashboard is the demo's render state: a rolling series of fake load
// samples plus the styles derived from the theme.
type dashboard struct {
	samples []uint64
	value   uint64
	ticks   uint64

	base   core.Style
	accent core.Color
}

func newDashboard(cfg *config.Config) *dashboard {
	d := &dashboard{
		samples: make([]uint64, 0, 256),
		value:   50,
	}
	d.applyTheme(cfg)
	return d
}

func (d *dashboard) applyTheme(cfg *config.Config) {
	d.base = core.DefaultStyle().
		WithForeground(cfg.ForegroundColor()).
		WithBackground(cfg.BackgroundColor())
	d.accent = cfg.AccentColor()
}

// tick advances the fake load series with a bounded random walk and
// occasionally pushes a summary line into the scrollback.
func (d *dashboard) tick(term *terminal.Terminal) {
	d.ticks++

	step := uint64(rand.Int63n(21))
	if step > 10 {
		d.value += step - 10
	} else if d.value >= 10-step {
		d.value -= 10 - step
	}
	if d.value > 100 {
		d.value = 100
	}

	d.samples = append(d.samples, d.value)
	if len(d.samples) > maxSamples {
		d.samples = d.samples[1:]
	}

	if d.ticks%100 == 0 {
		d.logf(term, "avg load %d%% over last %d samples", d.average(), len(d.samples))
	}
}

func (d *dashboard) average() uint64 {
	if len(d.samples) == 0 {
		return 0
	}
	var sum uint64
	for _, s := range d.samples {
		sum += s
	}
	return sum / uint64(len(d.samples))
}

// logf writes one line above the viewport. Fullscreen terminals ignore
// the insert, so the demo degrades gracefully there.
func (d *dashboard) logf(term *terminal.Terminal, format string, args ...any) {
	line := fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	err := term.InsertBefore(1, func(buf *buffer.Buffer) {
		buf.SetString(0, 0, line, d.base)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: insert failed: %v\n", err)
	}
}

func (d *dashboard) render(f *terminal.Frame) {
	area := f.Area()
	buf := f.Buffer()
	buf.Fill(area, core.NewStyledCell(" ", d.base))

	rows := layout.New(layout.Vertical, layout.Length(1), layout.Min(0)).Split(area)
	header, graph := rows[0], rows[1]

	title := fmt.Sprintf(" load %3d%%  avg %3d%% ", d.value, d.average())
	buf.SetStringN(header.Left(), header.Top(), title, header.Width, d.base.Bold())

	if graph.Height < 1 {
		return
	}

	// Newest samples hug the right edge.
	data := d.samples
	if len(data) > graph.Width {
		data = data[len(data)-graph.Width:]
	}
	reversed := make([]uint64, len(data))
	for i, v := range data {
		reversed[len(data)-1-i] = v
	}

	widget.NewSparkline().
		Data(reversed).
		Max(100).
		Style(d.base.WithForeground(d.barColor())).
		Direction(widget.RightToLeft).
		Render(graph, buf)
}

// barColor shades the accent toward red as the current value climbs.
func (d *dashboard) barColor() core.Color {
	accent := d.accent
	if accent.IsDefault() {
		return accent
	}
	cool := colorful.Color{
		R: float64(accent.R) / 255,
		G: float64(accent.G) / 255,
		B: float64(accent.B) / 255,
	}
	hot := colorful.Color{R: 1, G: 0.2, B: 0.1}
	blended := cool.BlendLuv(hot, float64(d.value)/100).Clamped()
	r, g, b := blended.RGB255()
	return core.ColorFromRGB(r, g, b)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.DurationVar(&opts.duration, "duration", 0, "Exit after this long (0 = run until interrupted)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termframe-demo - inline rendering demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termframe-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("termframe-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
