package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/brs/codec"
	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/internal/logger"
)

const defaultMaxDepth = codec.DefaultMaxDepth

// Config represents the brsdump configuration file (~/.config/brsdump/config.yaml).
// Explicitly set flags take precedence over its values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	ByteOrder string `yaml:"byte_order"`
	MaxDepth  *int   `yaml:"max_depth"`
	// Schema is the default schema file for dump.
	Schema string `yaml:"schema"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "brsdump", "config.yaml")
}

// loadConfig reads the config file. A missing file yields a zero Config.
func loadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// settings are the effective options after merging flags over the config file.
type settings struct {
	logLevel  string
	logFormat string
	byteOrder string
	maxDepth  int
	schema    string
}

// resolveSettings applies config file values to every flag that was not set explicitly.
func resolveSettings(cmd *cli.Command, cfg Config) settings {
	s := settings{
		logLevel:  cmd.String("log-level"),
		logFormat: cmd.String("log-format"),
		byteOrder: cmd.String("byte-order"),
		maxDepth:  cmd.Int("max-depth"),
		schema:    cfg.Schema,
	}

	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		s.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		s.logFormat = cfg.LogFormat
	}
	if cfg.ByteOrder != "" && !cmd.IsSet("byte-order") {
		s.byteOrder = cfg.ByteOrder
	}
	if cfg.MaxDepth != nil && !cmd.IsSet("max-depth") {
		s.maxDepth = *cfg.MaxDepth
	}

	return s
}

func parseByteOrder(name string) (endian.EndianEngine, error) {
	switch strings.ToLower(name) {
	case "", "native":
		return endian.GetNativeEngine(), nil
	case "little", "le":
		return endian.GetLittleEndianEngine(), nil
	case "big", "be":
		return endian.GetBigEndianEngine(), nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", name)
	}
}

func newLogger(w io.Writer, level, format string) (logger.Logger, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return logger.Text(w, logger.ParseLevel(level)), nil
	case "json":
		return logger.JSON(w, logger.ParseLevel(level)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// state carries what every subcommand needs, filled in by setup before any action runs.
type state struct {
	stdout io.Writer
	stderr io.Writer

	settings settings
	engine   endian.EndianEngine
	log      logger.Logger
}

func (st *state) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	st.settings = resolveSettings(cmd, cfg)

	if st.engine, err = parseByteOrder(st.settings.byteOrder); err != nil {
		return ctx, err
	}
	if st.log, err = newLogger(st.stderr, st.settings.logLevel, st.settings.logFormat); err != nil {
		return ctx, err
	}
	st.log.Debug("settings resolved", "byte_order", st.settings.byteOrder, "max_depth", st.settings.maxDepth)

	return logger.WithContext(ctx, st.log), nil
}

// decoder builds a decoder from the resolved settings.
func (st *state) decoder() (*codec.Decoder, error) {
	return codec.NewDecoder(
		codec.WithDecoderByteOrder(st.engine),
		codec.WithMaxDepth(st.settings.maxDepth),
		codec.WithLogger(st.log),
	)
}

// readInput reads a file, or stdin when path is "-".
func (st *state) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}
