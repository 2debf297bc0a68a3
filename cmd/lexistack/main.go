package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/lexistack/cache"
	"github.com/domino14/lexistack/config"
	"github.com/domino14/lexistack/dictionary"
	"github.com/domino14/lexistack/notify"
	"github.com/domino14/lexistack/runner"
	"github.com/domino14/lexistack/shell"
)

var (
	GitVersion string
)

//go:embed lexistack.txt
var lexistackbanner string

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func newFetcher(cfg *config.Config) dictionary.Fetcher {
	if p := cfg.GetString(config.ConfigDictionaryPath); p != "" {
		log.Info().Str("path", p).Msg("reading word list from file")
		return &dictionary.FileFetcher{Path: p}
	}
	return dictionary.NewHTTPFetcher(
		cfg.GetString(config.ConfigDictionaryURL),
		cfg.GetUint(config.ConfigDictionaryAttempts))
}

// openResponseCache opens the durable cache, falling back to memory if it
// is not configured or cannot be opened.
func openResponseCache(ctx context.Context, cfg *config.Config) (cache.ResponseCache, func()) {
	p := cfg.GetString(config.ConfigCachePath)
	if p == "" {
		return cache.NewMemoryCache(), func() {}
	}
	sc, err := cache.OpenSQLiteCache(ctx, p)
	if err != nil {
		log.Warn().Err(err).Str("path", p).Msg("could not open response cache, keeping it in memory")
		return cache.NewMemoryCache(), func() {}
	}
	return sc, func() {
		if err := sc.Close(); err != nil {
			log.Err(err).Msg("closing response cache")
		}
	}
}

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println(lexistackbanner)
	fmt.Println(GitVersion)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)
	setupLogging(cfg)
	log.Info().Msgf("executable path: %v", exPath)
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	responses, closeCache := openResponseCache(ctx, cfg)
	defer closeCache()
	dict := dictionary.NewService(newFetcher(cfg), responses)
	dict.Preload()

	g, err := runner.NewGameRunner(cfg, &runner.GameOptions{}, dict.IsValidWord)
	if err != nil {
		log.Err(err).Msg("could not start game")
		return
	}

	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		n, err := notify.Dial(url, cfg.GetString(config.ConfigNatsSubject))
		if err != nil {
			log.Err(err).Msg("could not connect to nats; game events will not be published")
		} else {
			g.AddListener(n.Listener())
			defer func() {
				if err := n.Close(); err != nil {
					log.Err(err).Msg("draining nats connection")
				}
			}()
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.Run(ectx)
	})
	eg.Go(func() error {
		select {
		case <-sig:
			// We received an interrupt signal, shut down.
			log.Info().Msg("got quit signal...")
		case <-ectx.Done():
		}
		cancel()
		return nil
	})

	sc := shell.NewShellController(cfg, g, dict)
	go sc.Loop(sig)
	log.Info().Msg("started loop")

	if err := eg.Wait(); err != nil {
		log.Err(err).Msg("exited with error")
	}
	log.Info().Msg("gracefully shutting down")
}
