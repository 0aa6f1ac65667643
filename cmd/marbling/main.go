// Command marbling runs the marbling engine headless and writes the last
// frame as PNG or SVG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/schedule"
	"github.com/gogpu/marbling/surface"
	_ "github.com/gogpu/marbling/surface/raster"
	_ "github.com/gogpu/marbling/surface/svg"
)

type options struct {
	width, height int
	frames        int
	backend       string
	output        string
	detail        int
	dropCap       int
	minRadius     float64
	maxRadius     float64
	palette       string
	seed          uint64
	workers       int
	caption       bool
	verbose       bool
}

func main() {
	var o options
	flag.IntVar(&o.width, "width", 800, "canvas width")
	flag.IntVar(&o.height, "height", 600, "canvas height")
	flag.IntVar(&o.frames, "frames", 600, "number of frames to simulate")
	flag.StringVar(&o.backend, "backend", "raster", "surface backend (raster, svg)")
	flag.StringVar(&o.output, "output", "", "output file (default marbling.png or marbling.svg)")
	flag.IntVar(&o.detail, "detail", marbling.DefaultDetail, "vertices per drop")
	flag.IntVar(&o.dropCap, "dropcap", marbling.DefaultDropCap, "maximum live drops")
	flag.Float64Var(&o.minRadius, "rmin", 0, "minimum drop radius (0 = default radius)")
	flag.Float64Var(&o.maxRadius, "rmax", 0, "maximum drop radius (0 = default radius)")
	flag.StringVar(&o.palette, "palette", "random", "drop colors (random, happy)")
	flag.Uint64Var(&o.seed, "seed", 1, "random seed")
	flag.IntVar(&o.workers, "workers", 1, "marbling workers (0 = GOMAXPROCS)")
	flag.BoolVar(&o.caption, "caption", false, "draw a stats caption")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("marbling: %v", err)
	}
}

func run(o options) error {
	if o.verbose {
		marbling.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	eng, err := marbling.NewEngine(
		marbling.WithDetail(o.detail),
		marbling.WithDropCap(o.dropCap),
		marbling.WithWorkers(o.workers),
	)
	if err != nil {
		return err
	}
	defer eng.Close()

	var palette schedule.Palette = schedule.RandomRGB
	switch o.palette {
	case "random":
	case "happy":
		palette = schedule.HappyPalette(0.5, 0.8)
	default:
		return fmt.Errorf("unknown palette %q", o.palette)
	}

	sch, err := schedule.New(schedule.Config{
		Width:     float64(o.width),
		Height:    float64(o.height),
		MinRadius: o.minRadius,
		MaxRadius: o.maxRadius,
		Palette:   palette,
		Seed:      o.seed,
	})
	if err != nil {
		return err
	}

	s, err := surface.NewByName(o.backend, surface.DefaultOptions(o.width, o.height))
	if err != nil {
		return err
	}
	defer s.Close()

	enc, ok := s.(surface.Encoder)
	if !ok {
		return fmt.Errorf("backend %q cannot write files", o.backend)
	}

	p := message.NewPrinter(language.English)
	for frame := 1; frame <= o.frames; frame++ {
		if o.caption && frame == o.frames {
			if c, ok := s.(interface{ SetCaption(string) }); ok {
				st := eng.Stats()
				c.SetCaption(p.Sprintf("%d frames, %d drops spawned, %d live", frame, st.Spawned, eng.Len()))
			}
		}
		if err := eng.Frame(s); err != nil {
			return err
		}
		if _, err := sch.Apply(eng); err != nil {
			return err
		}
	}

	path := o.output
	if path == "" {
		path = "marbling" + enc.Extension()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	st := eng.Stats()
	log.Print(p.Sprintf("saved %s (%dx%d): %d frames, %d drops spawned, %d evicted",
		path, o.width, o.height, o.frames, st.Spawned, st.Evicted))
	return nil
}
