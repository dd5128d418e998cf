package main

import (
	"flag"
	"log"

	"github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/fonts"
	"github.com/automoto/netinterp/interp"
	"github.com/automoto/netinterp/scenes"
	"github.com/automoto/netinterp/shared/protocol"
	"github.com/automoto/netinterp/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func NewGame() *Game {
	mustLoadFont(fonts.HUD, goregular.TTF, 14)
	mustLoadFont(fonts.HUDSmall, goregular.TTF, 11)
	mustLoadFont(fonts.Mono, gomono.TTF, 13)

	return &Game{
		scene: scenes.NewNetworkedScene(),
	}
}

func mustLoadFont(name fonts.FontName, ttf []byte, size float64) {
	if err := fonts.LoadFontWithSize(name, ttf, size); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	// Register network components so remote worlds can be serialized
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	// Saved settings load first so that flags given on the command line win.
	if err := systems.InitPersistence("netinterp"); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
	} else if err := systems.ApplySavedSettings(saved); err != nil {
		log.Printf("Warning: Ignoring saved settings: %v", err)
	}

	mode := flag.String("mode", config.Interp.Mode.String(), "position interpolation: linear or hermite")
	delay := flag.Float64("delay", config.Interp.BufferDelay, "buffer delay in seconds")
	clamp := flag.Bool("clamp", config.Interp.ClampAlpha, "clamp the interpolation factor to [0,1]")
	tickRate := flag.Int("tickrate", config.Demo.TickRate, "authority updates per second")
	latency := flag.Float64("latency", config.Demo.LatencyMillis, "simulated one-way latency in ms")
	jitter := flag.Float64("jitter", config.Demo.JitterMillis, "simulated latency jitter in ms")
	loss := flag.Float64("loss", config.Demo.Loss, "simulated packet loss in [0,1]")
	seed := flag.Uint64("seed", config.Demo.Seed, "random seed for the simulated link")
	entities := flag.Int("entities", config.Demo.Entities, "number of remote entities")
	flag.Parse()

	m, err := interp.ParseMode(*mode)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}
	config.Interp.Mode = m
	config.Interp.BufferDelay = max(*delay, 0)
	config.Interp.ClampAlpha = *clamp
	config.Demo.TickRate = max(*tickRate, 1)
	config.Demo.LatencyMillis = max(*latency, 0)
	config.Demo.JitterMillis = max(*jitter, 0)
	config.Demo.Loss = min(max(*loss, 0), 1)
	config.Demo.Seed = *seed
	config.Demo.Entities = max(*entities, 1)

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("netinterp")

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
