// Command bounce is a small demo driver: a dozen sprites carrying position
// and velocity components ricochet around the terminal. A logic runlevel
// moves and bounces them, a presentation runlevel draws them; the main loop
// ticks both at a fixed rate. Press p to pause, q or Escape to quit.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/aether-engine/aether"
)

const (
	runlevelLogic        = 0
	runlevelPresentation = 1
)

type appConfig struct {
	Width  int
	Height int
	Fps    int
	Debug  bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := appConfig{Width: 80, Height: 24, Fps: 30}
	if err := config.FromEnv().To(&cfg); err != nil {
		return err
	}

	logger := zerolog.Nop()
	if cfg.Debug {
		f, err := os.Create("bounce.log")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	reg := aether.New(aether.WithLogger(logger))
	logic := reg.Runlevel(runlevelLogic)
	presentation := reg.Runlevel(runlevelPresentation)

	paused := false
	if _, err := logic.AddSystem(GateSystemType, &paused); err != nil {
		return err
	}
	if _, err := logic.AddSystem(MoveSystemType); err != nil {
		return err
	}
	if _, err := logic.AddSystem(BounceSystemType, cfg.Width, cfg.Height); err != nil {
		return err
	}
	if _, err := presentation.AddSystem(RenderSystemType, screen); err != nil {
		return err
	}

	if err := spawnSprites(reg, cfg); err != nil {
		return err
	}
	reg.LogWorld(zerolog.InfoLevel)

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Fps))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					return nil
				}
				if ev.Rune() == 'p' {
					paused = !paused
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := logic.Execute(dt); err != nil {
				return err
			}
			if err := presentation.Execute(dt); err != nil {
				return err
			}
		}
	}
}

func spawnSprites(reg *aether.Registry, cfg appConfig) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	glyphs := []rune{'o', '*', '+', '#', '@'}
	styles := []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorTeal),
		tcell.StyleDefault.Foreground(tcell.ColorYellow),
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	}
	for i := 0; i < 12; i++ {
		e := reg.CreateEntity()
		if _, err := e.AddComponent(PositionType,
			rng.Float64()*float64(cfg.Width-1),
			rng.Float64()*float64(cfg.Height-1)); err != nil {
			return err
		}
		if _, err := e.AddComponent(VelocityType,
			rng.Float64()*24-12,
			rng.Float64()*12-6); err != nil {
			return err
		}
		if _, err := e.AddComponent(SpriteType,
			glyphs[i%len(glyphs)],
			styles[i%len(styles)]); err != nil {
			return err
		}
	}
	return nil
}
