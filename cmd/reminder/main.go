package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmhodges/clock"
	"github.com/lomoval/reminder/internal/app"
	"github.com/lomoval/reminder/internal/logger"
	"github.com/lomoval/reminder/internal/storage"
	"github.com/lomoval/reminder/internal/storagebuilder"
	log "github.com/sirupsen/logrus"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		os.Exit(1)
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		os.Exit(1)
	}
	loc, err := storage.LoadLocation(config.Storage.Database.Timezone)
	if err != nil {
		log.Errorf("failed to start %v", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	stor, err := storagebuilder.New(ctx, config.Storage, clock.New())
	if err != nil {
		log.Errorf("failed to start %v", err)
		os.Exit(1)
	}

	cmd := newCommand(app.New(stor), os.Stdout, loc)
	err = cmd.Run(ctx, flag.Args())

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*3)
	defer closeCancel()
	if err := stor.Close(closeCtx); err != nil {
		log.Errorf("failed to close storage: %v", err)
	}
	if err != nil {
		log.Error(err)
		closeCancel()
		os.Exit(1) //nolint:gocritic
	}
}
