// Command marbling-live shows the marbling engine in a desktop window.
// Left click drops paint at the cursor; Esc quits.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/marbling"
	"github.com/gogpu/marbling/schedule"
	"github.com/gogpu/marbling/surface"
	"github.com/gogpu/marbling/surface/raster"
)

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		detail  = flag.Int("detail", marbling.DefaultDetail, "vertices per drop")
		dropCap = flag.Int("dropcap", marbling.DefaultDropCap, "maximum live drops")
		workers = flag.Int("workers", 0, "marbling workers (0 = GOMAXPROCS)")
		auto    = flag.Bool("auto", false, "keep dropping paint on prime frames")
		seed    = flag.Uint64("seed", 1, "random seed")
		hud     = flag.Bool("hud", true, "draw a stats caption")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		marbling.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	eng, err := marbling.NewEngine(
		marbling.WithDetail(*detail),
		marbling.WithDropCap(*dropCap),
		marbling.WithWorkers(*workers),
	)
	if err != nil {
		log.Fatalf("marbling-live: %v", err)
	}
	defer eng.Close()

	sch, err := schedule.New(schedule.Config{
		Width:  float64(*width),
		Height: float64(*height),
		Seed:   *seed,
	})
	if err != nil {
		log.Fatalf("marbling-live: %v", err)
	}

	s := raster.NewWithOptions(surface.DefaultOptions(*width, *height))
	defer s.Close()

	g := &liveGame{
		eng:     eng,
		sch:     sch,
		surface: s,
		auto:    *auto,
		hud:     *hud,
		printer: message.NewPrinter(language.English),
	}

	ebiten.SetWindowTitle("marbling")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("marbling-live: %v", err)
	}
}

type liveGame struct {
	eng     *marbling.Engine
	sch     *schedule.Scheduler
	surface *raster.Surface
	auto    bool
	hud     bool
	printer *message.Printer

	frameImg *ebiten.Image
}

func (g *liveGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.hud {
		st := g.eng.Stats()
		g.surface.SetCaption(g.printer.Sprintf("%d live drops, %d spawned, %.0f TPS",
			g.eng.Len(), st.Spawned, ebiten.ActualTPS()))
	}
	if err := g.eng.Frame(g.surface); err != nil {
		return err
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		req := g.sch.Draw()
		if _, err := g.eng.SpawnDefault(float64(x), float64(y), req.Color); err != nil {
			return err
		}
	}
	if g.auto {
		if _, err := g.sch.Apply(g.eng); err != nil {
			return err
		}
	}
	return nil
}

func (g *liveGame) Draw(screen *ebiten.Image) {
	img := g.surface.RGBA()
	b := img.Bounds()
	if g.frameImg == nil || g.frameImg.Bounds().Dx() != b.Dx() || g.frameImg.Bounds().Dy() != b.Dy() {
		if g.frameImg != nil {
			g.frameImg.Deallocate()
		}
		g.frameImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frameImg.WritePixels(img.Pix)
	screen.DrawImage(g.frameImg, nil)
}

func (g *liveGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.Width(), g.surface.Height()
}
