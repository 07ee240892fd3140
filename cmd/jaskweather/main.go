package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskweather/internal/config"
	"github.com/jask/jaskweather/internal/database"
	"github.com/jask/jaskweather/internal/database/repository"
	"github.com/jask/jaskweather/internal/prefs"
	"github.com/jask/jaskweather/internal/remote"
	"github.com/jask/jaskweather/internal/sample"
	"github.com/jask/jaskweather/internal/secrets"
	"github.com/jask/jaskweather/internal/service"
	"github.com/jask/jaskweather/internal/telemetry"
	"github.com/jask/jaskweather/internal/tui"
	"github.com/jask/jaskweather/internal/viewmodel"
)

func main() {
	reset := flag.Bool("reset", false, "clear cached weather and the remembered city, then exit")
	setKey := flag.String("set-key", "", "store the OpenWeatherMap API key, then exit")
	seed := flag.Bool("seed", false, "write sample cities into the cache, then exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	keys, err := secrets.NewStore("")
	if err != nil {
		log.Fatalf("secrets: %v", err)
	}
	if *setKey != "" {
		if err := keys.Put(config.SecretName, strings.TrimSpace(*setKey)); err != nil {
			log.Fatalf("store key: %v", err)
		}
		fmt.Println("API key saved")
		return
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	selection, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		log.Fatalf("prefs: %v", err)
	}
	cache := repository.NewWeatherRepo(db)
	maintenance := &service.MaintenanceService{DB: db, Cache: cache, Selection: selection}

	if *reset {
		if err := maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		fmt.Println("cache cleared")
		return
	}
	if *seed {
		n, err := sample.Seed(ctx, cache, uint64(time.Now().UnixNano()))
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Printf("seeded %d cities\n", n)
		return
	}

	// the TUI owns the terminal from here on
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.Path, "jaskweather")
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	defer logFile.Close()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint)
	if err != nil {
		log.Printf("warn: telemetry disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(flushCtx)
	}()

	if n, err := maintenance.PruneStale(ctx, cfg.Cache.MaxAge); err != nil {
		log.Printf("warn: %v", err)
	} else if n > 0 {
		log.Printf("pruned %d stale cache rows", n)
	}

	client := remote.NewClient(cfg.API.BaseURL, cfg.API.ResolveKey(keys),
		remote.WithUnits(cfg.API.Units),
		remote.WithTimeout(cfg.API.Timeout),
	)
	weather := &service.WeatherService{Remote: client, Cache: cache}
	interactor := &service.WeatherInteractor{Weather: weather, Selection: selection, Logger: log.Default()}

	store := viewmodel.New(ctx, interactor, log.Default())
	defer store.Close()

	p := tea.NewProgram(tui.New(ctx, store, tui.Options{
		Units:    cfg.API.Units,
		Language: cfg.UI.Language,
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
