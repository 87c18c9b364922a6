package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "chordsonar",
		Usage: "Transpose chord charts and analyze chord progressions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print results as JSON",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "engine config file (JSON)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "force colored log output on or off (default: on for terminals)",
			},
		},
		Commands: []*cli.Command{
			transposeCommand(),
			previewCommand(),
			capoCommand(),
			intervalCommand(),
			analyzeCommand(),
			errorsCommand(),
			reharmCommand(),
		},
	}

	if err := cmd.Run(context.TODO(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Use --help for more information.")
		os.Exit(1)
	}
}
