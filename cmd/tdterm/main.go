// cmd/tdterm/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"go-td-core/internal/app"
	"go-td-core/internal/audio"
	"go-td-core/internal/bridge"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/skill"
	"go-td-core/internal/termview"

	"github.com/gdamore/tcell/v2"
)

func main() {
	headless := flag.Bool("headless", false, "run without a terminal UI")
	seed := flag.Int64("seed", 1, "random seed")
	mapID := flag.String("map", "", "map id")
	timelineID := flag.String("timeline", "", "spawn timeline id")
	ticks := flag.Int("ticks", 3600, "ticks to simulate in headless mode")
	dataDir := flag.String("data", config.DataDir, "definition directory")
	wsAddr := flag.String("ws", "", "serve the event stream on this address, e.g. :8080")
	withAudio := flag.Bool("audio", false, "enable sound cues")
	logFile := flag.String("log", "tdterm.log", "log file used while the terminal UI is active")
	flag.Parse()

	if !*headless {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	lib, err := defs.LoadLibrary(*dataDir)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	store, err := skill.StoreFromEnv(os.Getenv("PROFILE_ID"))
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer store.Close()

	game, err := app.NewGame(lib, app.Options{
		Seed:       *seed,
		MapID:      *mapID,
		TimelineID: *timelineID,
		SkillStore: store,
	})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.Printf("Failed to save skill progress: %v", err)
		}
	}()

	if *wsAddr != "" {
		hub := bridge.NewHub(game)
		hub.Attach(game.Events)
		defer hub.Close()
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		go func() {
			log.Printf("Bridge: listening on %s", *wsAddr)
			if err := http.ListenAndServe(*wsAddr, mux); err != nil {
				log.Printf("Bridge: server stopped: %v", err)
			}
		}()
	}

	if *withAudio {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio: disabled: %v", err)
		} else {
			defer sm.Cleanup()
			audio.NewCues(sm).Attach(game.Events)
		}
	}

	if *headless {
		runHeadless(game, *ticks)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	termview.New(game).Run(screen)
}

// runHeadless starts spawning and steps at a fixed 60 Hz.
func runHeadless(game *app.Game, ticks int) {
	const dt = 1.0 / 60
	if res := game.StartSpawning(); !res.OK {
		log.Printf("Headless: start spawning: %s", res.Reason)
	}
	for i := 0; i < ticks && !game.Over(); i++ {
		game.Tick(dt)
	}
	fmt.Printf("time %.2fs  gold %d  base %d/%d  enemies %d  spawner %s\n",
		game.Time(), game.Ledger.Balance(), game.Base.Health(), game.Base.MaxHealth(),
		game.Enemies.Len(), game.Spawner.State())
}
