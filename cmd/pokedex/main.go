package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pokedex/internal/config"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/log"
	"github.com/mmcdole/pokedex/internal/metrics"
	"github.com/mmcdole/pokedex/internal/pokeapi"
	"github.com/mmcdole/pokedex/internal/repository"
	"github.com/mmcdole/pokedex/internal/search"
	"github.com/mmcdole/pokedex/internal/store"
	"github.com/mmcdole/pokedex/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	findLimit       = 20
	shutdownTimeout = 2 * time.Second
)

func main() {
	var (
		showVersion bool
		find        string
		clearCache  bool
		writeConfig bool
		syncAll     bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&find, "find", "", "search cached entries offline and exit")
	flag.BoolVar(&clearCache, "clear-cache", false, "delete the local cache and exit")
	flag.BoolVar(&writeConfig, "write-config", false, "write the effective config file and exit")
	flag.BoolVar(&syncAll, "sync", false, "download the whole catalog into the cache and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("pokedex %s\n", Version)
		return
	}

	if err := run(find, clearCache, writeConfig, syncAll); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(find string, clearCache, writeConfig, syncAll bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging, Version)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting pokedex")

	switch {
	case writeConfig:
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("✓ Configuration saved")
		return nil
	case clearCache:
		if err := config.ClearCache(cfg.Cache.Dir); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	catalogStore, err := store.NewCatalogStore(cfg.Cache.Dir, cfg.Cache.MemoryEntries)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer catalogStore.Close()

	if find != "" {
		return printSearch(os.Stdout, search.NewService(catalogStore, log.Component(logger, "search")), find)
	}

	client := pokeapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log.Component(logger, "pokeapi"))
	repo := repository.NewMainRepository(client, catalogStore, log.Component(logger, "repository"))

	if syncAll {
		return syncCatalog(os.Stdout, repo)
	}

	metricsSrv, err := metrics.Start(cfg.Metrics.Addr, log.Component(logger, "metrics"))
	if err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		metricsSrv.Shutdown(ctx)
	}()

	// Piped output gets the first page as plain lines
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printFirstPage(os.Stdout, repo, cfg.API.Timeout)
	}

	model := tui.NewModel(repo, tui.Options{
		Transition:    cfg.UI.Transition,
		ToastTTL:      cfg.UI.ToastTTL,
		FetchTimeout:  cfg.API.Timeout,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		Logger:        log.Component(logger, "tui"),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printFirstPage writes page 0 as "number<TAB>name" lines
func printFirstPage(w io.Writer, repo domain.PokedexRepository, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		items   []domain.Pokemon
		failure string
	)
	repo.FetchPokemonList(ctx, 0, domain.FetchHooks{
		OnItems: func(list []domain.Pokemon) { items = list },
		OnError: func(message string) { failure = message },
	})
	if failure != "" {
		return fmt.Errorf("failed to fetch catalog: %s", failure)
	}

	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\n", p.Number(), p.Name)
	}
	return nil
}

// syncCatalog stores every page locally, reporting progress on one line
func syncCatalog(w io.Writer, repo *repository.MainRepository) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loaded, err := repo.SyncAll(ctx, func(n int) {
		fmt.Fprintf(w, "\rSyncing catalog... %d entries", n)
	})
	fmt.Fprintln(w)
	if err != nil {
		return fmt.Errorf("sync stopped after %d entries: %w", loaded, err)
	}
	fmt.Fprintf(w, "✓ Synced %d entries\n", loaded)
	return nil
}

// printSearch writes ranked offline matches for query
func printSearch(w io.Writer, svc *search.Service, query string) error {
	results := svc.Find(query, findLimit)
	if len(results) == 0 {
		return fmt.Errorf("no cached entries match %q", query)
	}
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\n", r.Pokemon.Number(), r.Pokemon.DisplayName())
	}
	return nil
}
