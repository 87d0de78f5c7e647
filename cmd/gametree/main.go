package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mway1/gametree"
	"github.com/mway1/gametree/internal/bootstrap"
)

func main() {
	cfgPath := flag.String("config", "gametree.yaml", "path to an optional config file")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup configuration:", err)
		os.Exit(1)
	}

	logger := NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	tree, err := gametree.NewTreeFromFEN(gametree.Rules{}, cfg.StartFEN)
	if err != nil {
		logger.Fatal("Failed to load start position", zap.Error(err))
	}

	session := gametree.NewSession(
		gametree.WithTree(tree),
		gametree.WithConfig(cfg.Board()),
		gametree.WithLogger(logger.Desugar()),
	)
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("Session started", "fen", tree.Current().Position())
	run(ctx, session, logger)
}

func NewLogger(cfg *bootstrap.Config) *zap.SugaredLogger {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func run(ctx context.Context, session *gametree.Session, log *zap.SugaredLogger) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	printView(os.Stdout, session.View())
	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down")
			return
		case res := <-session.Edits():
			if err := session.ResolveEdit(res); err != nil {
				log.Warnw("Edit failed", "error", err)
			}
			printView(os.Stdout, session.View())
		case line, ok := <-lines:
			if !ok {
				return
			}
			quit, err := dispatch(ctx, session, line)
			if err != nil {
				fmt.Fprintln(os.Stdout, "error:", err)
			}
			if quit {
				return
			}
		}
	}
}
