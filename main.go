package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/tilt"
)

func main() {
	configPath := flag.String("config", "", "tuning file (YAML); watched for live reload")
	seed := flag.Int64("seed", 0, "world generation seed (0 = time-based)")
	debug := flag.Bool("debug", false, "show frame stats")
	noBridge := flag.Bool("no-bridge", false, "disable the phone tilt bridge (keyboard only)")
	flag.Parse()

	// Optional .env for deployment knobs like the bridge address.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	var watcher *config.Watcher
	if *configPath != "" {
		watcher, err = config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("config: live reload disabled: %v", err)
			watcher = nil
		}
	}

	var bridge *tilt.Bridge
	if !*noBridge {
		addr := os.Getenv("TILT_BRIDGE_ADDR")
		if addr == "" {
			addr = ":8089"
		}
		bridge = tilt.NewBridge(addr)
		bridge.Start()
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(cfg.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle("tiltrunner")

	game := NewGame(&cfg, *configPath, watcher, bridge, *seed, *debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
