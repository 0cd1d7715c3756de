package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/zephyrtronium/iterproto"
	"github.com/zephyrtronium/iterproto/internal/textenc"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run iterp")
	}
}

// newApp creates the command tree. Commands read input from stdin and write
// results to stdout.
func newApp(stdin io.Reader, stdout io.Writer) *cli.Command {
	var vm *iterproto.VM
	return &cli.Command{
		Name:    "iterp",
		Usage:   "Drive the iteration protocol from the command line",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic); overrides the config file",
				Sources: cli.EnvVars("ITERP_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML configuration file",
				Sources: cli.EnvVars("ITERP_CONFIG"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg := iterproto.DefaultConfig()
			if path := c.String("config"); path != "" {
				loaded, err := iterproto.LoadConfig(path)
				if err != nil {
					return ctx, fmt.Errorf("failed to load config: %w", err)
				}
				cfg = *loaded
			}
			if l := c.String("log-level"); l != "" {
				cfg.LogLevel = l
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			vm = iterproto.NewVM(&cfg)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "drain",
				Usage:     "Iterate a value built from the arguments until it is exhausted",
				ArgsUsage: "[items...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "value to iterate: list, str, range, or gen",
						Value: "list",
					},
					&cli.StringFlag{
						Name:  "encoding",
						Usage: "encoding of str input; defaults to the configured encoding",
					},
					&cli.StringFlag{
						Name:  "output-encoding",
						Usage: "encoding of written elements",
						Value: textenc.Default,
					},
					&cli.BoolFlag{
						Name:  "async",
						Usage: "advance as an asynchronous consumer",
					},
					&cli.BoolFlag{
						Name:  "collect",
						Usage: "collect through a host sequence instead of advancing directly",
					},
					&cli.StringFlag{
						Name:  "cpuprofile",
						Usage: "write a CPU profile of the drain to this file",
					},
					&cli.StringFlag{
						Name:  "memprofile",
						Usage: "write a heap profile after the drain to this file",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					obj, err := makeValue(vm, c.String("kind"), c.String("encoding"), c.Args().Slice(), stdin)
					if err != nil {
						return err
					}
					enc := c.String("output-encoding")
					if !textenc.Known(enc) {
						return fmt.Errorf("unknown output encoding %q", enc)
					}
					d := drainer{vm: vm, w: stdout, enc: enc}
					run := d.direct
					switch {
					case c.Bool("collect"):
						run = d.collect
					case c.Bool("async"):
						run = d.async
					}
					return profiled(c.String("cpuprofile"), c.String("memprofile"), func() error {
						return run(obj)
					})
				},
			},
			{
				Name:  "encodings",
				Usage: "List the encodings str input accepts",
				Action: func(ctx context.Context, c *cli.Command) error {
					for _, name := range textenc.Names() {
						fmt.Fprintln(stdout, name)
					}
					return nil
				},
			},
		},
	}
}
