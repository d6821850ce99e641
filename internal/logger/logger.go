package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Level string
}

func PrepareLogger(config Config) error {
	return prepare(config, os.Stderr)
}

func prepare(config Config, out io.Writer) error {
	level, err := log.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return fmt.Errorf("incorrect log level %q: %w", config.Level, err)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(out)
	log.SetLevel(level)
	return nil
}
