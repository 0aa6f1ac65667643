// Command marbling-term shows the marbling engine in a terminal.
// Click to drop paint; q, Esc or Ctrl-C quits.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/schedule"
	"github.com/gogpu/marbling/surface"
	"github.com/gogpu/marbling/surface/term"
)

// Canvas units per terminal cell. Cells are about twice as tall as wide.
const (
	cellWidth  = 8
	cellHeight = 16
)

func main() {
	var (
		detail  = flag.Int("detail", 200, "vertices per drop")
		dropCap = flag.Int("dropcap", marbling.DefaultDropCap, "maximum live drops")
		radius  = flag.Float64("radius", 60, "radius of clicked drops")
		auto    = flag.Bool("auto", true, "keep dropping paint on prime frames")
		seed    = flag.Uint64("seed", 1, "random seed")
		logFile = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if err := run(*detail, *dropCap, *radius, *auto, *seed, *logFile); err != nil {
		log.Fatalf("marbling-term: %v", err)
	}
}

func run(detail, dropCap int, radius float64, auto bool, seed uint64, logFile string) error {
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		marbling.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	opts := surface.DefaultOptions(max(cols, 1)*cellWidth, max(rows, 1)*cellHeight)
	opts.Custom = map[string]any{term.ScreenKey: screen}
	s, err := term.NewWithOptions(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	eng, err := marbling.NewEngine(
		marbling.WithDetail(detail),
		marbling.WithDropCap(dropCap),
		marbling.WithDefaultRadius(radius),
	)
	if err != nil {
		return err
	}
	defer eng.Close()

	sch, err := schedule.New(schedule.Config{
		Width:     float64(s.Width()),
		Height:    float64(s.Height()),
		MinRadius: radius / 2,
		MaxRadius: radius,
		Palette:   schedule.HappyPalette(0.5, 0.8),
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var buttons tcell.ButtonMask
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}

			case *tcell.EventMouse:
				pressed := ev.Buttons() & tcell.Button1
				if pressed != 0 && buttons&tcell.Button1 == 0 {
					col, row := ev.Position()
					at := s.CanvasPoint(col, row)
					if _, err := eng.SpawnDefault(at.X, at.Y, sch.Draw().Color); err != nil {
						return err
					}
				}
				buttons = ev.Buttons()

			case *tcell.EventResize:
				screen.Sync()
				cols, rows := screen.Size()
				s.Resize(max(cols, 1)*cellWidth, max(rows, 1)*cellHeight)
				if err := sch.Resize(float64(s.Width()), float64(s.Height())); err != nil {
					return err
				}
			}

		case <-ticker.C:
			st := eng.Stats()
			s.SetCaption(p.Sprintf(" %d drops, %d spawned, q quits ", eng.Len(), st.Spawned))
			if err := eng.Frame(s); err != nil {
				return err
			}
			if auto {
				if _, err := sch.Apply(eng); err != nil {
					return err
				}
			}
		}
	}
}
