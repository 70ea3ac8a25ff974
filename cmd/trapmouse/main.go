package main

import (
    "context"
    "errors"
    "flag"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "github.com/jaminalder/trap-the-mouse/internal/app"
    "github.com/jaminalder/trap-the-mouse/internal/domain"
    "github.com/jaminalder/trap-the-mouse/internal/web"
)

func main() {
    addr := flag.String("addr", "", "listen address (defaults to :$PORT or :8080)")
    seed := flag.Uint64("seed", 0, "random seed for boards and AI players, 0 uses the clock")
    level := flag.String("log-level", "info", "log level")
    jsonLogs := flag.Bool("log-json", false, "write JSON logs instead of console output")
    flag.Parse()

    logger := newLogger(*level, *jsonLogs)
    log.Logger = logger

    if *addr == "" {
        port := os.Getenv("PORT")
        if port == "" {
            port = "8080"
            logger.Info().Msgf("defaulting to port %s", port)
        }
        *addr = ":" + port
    }

    cfg := domain.DefaultConfig()
    if err := cfg.Validate(); err != nil {
        logger.Fatal().Err(err).Msg("invalid board configuration")
    }
    opts := []app.Option{app.WithLogger(logger), app.WithConfig(cfg)}
    if *seed != 0 {
        opts = append(opts, app.WithSeed(*seed))
    }
    svc := app.NewService(opts...)

    srv := &http.Server{
        Addr:              *addr,
        Handler:           web.NewServer(svc, logger),
        ReadHeaderTimeout: 5 * time.Second,
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    go func() {
        logger.Info().Str("addr", *addr).Msg("listening")
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Fatal().Err(err).Msg("server failed")
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error().Err(err).Msg("shutdown")
    }
    logger.Info().Msg("stopped")
}

func newLogger(level string, jsonLogs bool) zerolog.Logger {
    lvl, err := zerolog.ParseLevel(level)
    if err != nil {
        lvl = zerolog.InfoLevel
    }
    zerolog.SetGlobalLevel(lvl)
    if jsonLogs {
        return zerolog.New(os.Stderr).With().Timestamp().Logger()
    }
    return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}
