package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/skirmish/internal/game"
	"github.com/Garsondee/skirmish/internal/render"
)

const (
	screenW = 1280
	screenH = 720
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed for the CPU player")
	logLevel := flag.String("log-level", "info", "slog level: debug, info, warn, error")
	verbose := flag.Bool("verbose", false, "record per-tick positions in the event log")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		log.Fatalf("bad -log-level %q: %v", *logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s, err := game.NewSkirmish(game.HumanController{},
		game.WithSeed(*seed),
		game.WithVerbose(*verbose),
		game.WithSound(render.LogSound{}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Skirmish")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(render.NewApp(s.World, s.Human, screenW, screenH)); err != nil {
		log.Fatal(err)
	}
}
