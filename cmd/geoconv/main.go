package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/woozymasta/geoconv/internal/config"
	"github.com/woozymasta/geoconv/internal/logger"
	"github.com/woozymasta/geoconv/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

const defaultConfigFile = "geoconv.yaml"

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"      env:"GEOCONV_CONFIG"      description:"Path to configuration file (default geoconv.yaml if present)"`
	Format      string `short:"f" long:"format"      env:"GEOCONV_FORMAT"      description:"Output format, overrides config" choice:"text" choice:"json" choice:"yaml"`
	Compact     bool   `long:"compact"               env:"GEOCONV_COMPACT"     description:"Minify JSON output"`
	Concurrency int    `short:"p" long:"concurrency" env:"GEOCONV_CONCURRENCY" description:"Batch workers, overrides config"`

	Coord   CoordCommand   `command:"coord"   description:"Convert coordinates between DD, DMS, UTM and MGRS"`
	WKT     WKTCommand     `command:"wkt"     description:"Rewrite WKT across the antimeridian and repair MULTIPOINT grouping"`
	GeoJSON GeoJSONCommand `command:"geojson" description:"Convert a GeoJSON geometry to GeoRSS, JSON or YAML"`
}

// env is the state shared by all commands once options are parsed.
type env struct {
	ctx         context.Context
	cfg         *config.Config
	out         *processor.Writer
	stdout      io.Writer
	stdin       io.Reader
	concurrency int
	compact     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts Options
	e := &env{ctx: ctx, stdout: os.Stdout, stdin: os.Stdin}
	opts.bind(e)

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}

		opts.Logger.Setup()
		if err := opts.prepare(e); err != nil {
			return err
		}

		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(os.Stdout, err)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		stop()
		log.Fatal().Err(err).Msg("Conversion failed")
	}
}

// bind hands the shared env to every command.
func (o *Options) bind(e *env) {
	o.Coord.env = e
	o.GeoJSON.env = e
	o.WKT.Normalize = wktOp{env: e, run: normalizeOp}
	o.WKT.Denormalize = wktOp{env: e, run: denormalizeOp}
	o.WKT.Split = wktOp{env: e, run: splitOp}
	o.WKT.Explode = wktOp{env: e, run: explodeOp}
}

// prepare loads the config and applies flag overrides.
func (o *Options) prepare(e *env) error {
	path, optional := o.ConfigFile, false
	if path == "" {
		path, optional = defaultConfigFile, true
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if o.Format != "" {
		cfg.Output = o.Format
	}
	if o.Compact {
		cfg.Compact = true
	}
	if o.Concurrency > 0 {
		cfg.Concurrency = o.Concurrency
	}

	out, err := processor.NewWriter(e.stdout, cfg.Output, cfg.Compact)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.out = out
	e.concurrency = cfg.Concurrency
	e.compact = cfg.Compact

	log.Debug().
		Str("config", path).
		Str("output", cfg.Output).
		Int("concurrency", cfg.Concurrency).
		Msg("Configuration loaded")

	return nil
}
