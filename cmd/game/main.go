// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"go-td-core/internal/app"
	"go-td-core/internal/audio"
	"go-td-core/internal/bridge"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/skill"
	"go-td-core/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	mapID := flag.String("map", "", "start directly on this map; empty shows the menu")
	timelineID := flag.String("timeline", "", "spawn timeline id")
	dataDir := flag.String("data", config.DataDir, "definition directory")
	wsAddr := flag.String("ws", "", "serve the event stream on this address, e.g. :8080")
	withAudio := flag.Bool("audio", true, "enable sound cues")
	flag.Parse()

	lib, err := defs.LoadLibrary(*dataDir)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	store, err := skill.StoreFromEnv(os.Getenv("PROFILE_ID"))
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer store.Close()

	var sound *audio.SoundManager
	if *withAudio {
		sound = audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			log.Printf("Audio: disabled: %v", err)
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	var hub *bridge.Hub
	var current atomic.Pointer[app.Game]
	if *wsAddr != "" {
		hub = bridge.NewHub(bridge.SinkFunc(func(cmd app.Command) bool {
			g := current.Load()
			if g == nil {
				return false
			}
			return g.Submit(cmd)
		}))
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

	newGame := func(id string) (*app.Game, error) {
		if prev := current.Load(); prev != nil {
			if err := prev.Close(); err != nil {
				log.Printf("Failed to save skill progress: %v", err)
			}
		}
		g, err := app.NewGame(lib, app.Options{
			Seed:       *seed,
			MapID:      id,
			TimelineID: *timelineID,
			SkillStore: store,
		})
		if err != nil {
			return nil, err
		}
		if sound != nil {
			audio.NewCues(sound).Attach(g.Events)
		}
		if hub != nil {
			hub.Attach(g.Events)
		}
		current.Store(g)
		return g, nil
	}

	sm := state.NewStateMachine()
	if *mapID != "" {
		g, err := newGame(*mapID)
		if err != nil {
			log.Fatalf("Failed to create game: %v", err)
		}
		sm.SetState(state.NewGameState(sm, g))
	} else {
		sm.SetState(state.NewMenuState(sm, lib, newGame))
	}

	appGame := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tower Defense")
	if err := ebiten.RunGame(appGame); err != nil {
		log.Fatal(err)
	}
	if g := current.Load(); g != nil {
		if err := g.Close(); err != nil {
			log.Printf("Failed to save skill progress: %v", err)
		}
	}
}
