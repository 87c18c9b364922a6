package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli/v3"

	"github.com/RyanBlaney/sonido-charts/algorithms/harmony"
	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/chart"
	"github.com/RyanBlaney/sonido-charts/chart/transpose"
	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
)

// env is what every subcommand needs after flag parsing
type env struct {
	cfg    *config.EngineConfig
	json   bool
	out    io.Writer
	logger logging.Logger
}

func setup(c *cli.Command) (*env, error) {
	cfg := config.DefaultEngineConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadEngineConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	logger := logging.NewStderrLogger()
	level := logging.ParseLevel(cfg.LogLevel)
	if c.Bool("debug") {
		level = logging.DebugLevel
	}
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)
	if c.IsSet("color") {
		if c.Bool("color") {
			logging.EnableColors()
		} else {
			logging.DisableColors()
		}
	}

	return &env{
		cfg:  cfg,
		json: c.Bool("json"),
		out:  os.Stdout,
		logger: logging.WithFields(logging.Fields{
			"component": "cli",
			"command":   c.Name,
		}),
	}, nil
}

// emit prints v as JSON or hands the writer to text
func (e *env) emit(v any, text func(w io.Writer)) error {
	if e.json {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(e.out)
	return nil
}

func (e *env) warn(diags []chart.Diagnostic) {
	for _, d := range diags {
		e.logger.Warn("Skipped input", logging.Fields{
			"kind":   d.Kind.String(),
			"offset": d.Offset,
			"text":   d.Text,
		})
	}
}

func (e *env) preferSharps(c *cli.Command) bool {
	if c.Bool("flats") {
		return false
	}
	if c.Bool("sharps") {
		return true
	}
	return e.cfg.PreferSharps
}

// readChart returns the --file contents, the joined arguments, or stdin
func readChart(c *cli.Command) (string, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read chart %s: %w", path, err)
		}
		return string(data), nil
	}
	if c.Args().Len() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// chordArgs returns the chords named on the command line, or those found
// in the --file chart
func chordArgs(c *cli.Command, e *env) ([]string, error) {
	if c.String("file") == "" {
		if c.Args().Len() == 0 {
			return nil, fmt.Errorf("no chords given")
		}
		return c.Args().Slice(), nil
	}

	content, err := readChart(c)
	if err != nil {
		return nil, err
	}
	res := chart.NewTokenizer(e.cfg).Tokenize(content)
	e.warn(res.Diagnostics)

	names := make([]string, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		names = append(names, tok.Text)
	}
	return names, nil
}

// Flags are built per command; urfave/cli flags hold parsed state
func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "read a chord chart from `FILE`",
	}
}

func semitonesFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "semitones",
		Aliases: []string{"n"},
		Usage:   "semitones to shift by (use --semitones=-2 to go down)",
	}
}

func spellingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "flats", Usage: "spell accidentals with flats"},
		&cli.BoolFlag{Name: "sharps", Usage: "spell accidentals with sharps"},
	}
}

func transposeCommand() *cli.Command {
	return &cli.Command{
		Name:      "transpose",
		Usage:     "Transpose chord names, or a whole chart with --file",
		ArgsUsage: "[CHORD...]",
		Flags: append([]cli.Flag{
			fileFlag(), semitonesFlag(),
			&cli.StringFlag{Name: "from", Usage: "source key (with --to)"},
			&cli.StringFlag{Name: "to", Usage: "target key (with --from)"},
		}, spellingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			n := c.Int("semitones")
			sharps := e.preferSharps(c)
			tr := transpose.NewTransposer(e.cfg)

			if c.String("file") == "" && c.Args().Len() > 0 && c.String("to") == "" {
				pairs := make([]transpose.Pair, 0, c.Args().Len())
				for _, name := range c.Args().Slice() {
					pairs = append(pairs, transpose.Pair{
						Original:   name,
						Transposed: transpose.Transpose(name, n, sharps),
					})
				}
				return e.emit(pairs, func(w io.Writer) {
					for _, p := range pairs {
						fmt.Fprintln(w, p.Transposed)
					}
				})
			}

			content, err := readChart(c)
			if err != nil {
				return err
			}

			var out string
			var diags []chart.Diagnostic
			if c.String("to") != "" {
				out, diags, err = tr.TransposeToKey(content, c.String("from"), c.String("to"))
				if err != nil {
					return err
				}
			} else {
				out, diags = tr.TransposeText(content, n, sharps)
			}
			e.warn(diags)

			result := struct {
				Text        string             `json:"text"`
				Diagnostics []chart.Diagnostic `json:"diagnostics,omitempty"`
			}{out, diags}
			return e.emit(result, func(w io.Writer) {
				fmt.Fprint(w, out)
			})
		},
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "List each distinct chord of a chart next to its transposed form",
		ArgsUsage: "[TEXT]",
		Flags:     append([]cli.Flag{fileFlag(), semitonesFlag()}, spellingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			content, err := readChart(c)
			if err != nil {
				return err
			}

			tr := transpose.NewTransposer(e.cfg)
			pairs, remaining := tr.Preview(content, c.Int("semitones"), e.preferSharps(c))

			result := struct {
				Pairs     []transpose.Pair `json:"pairs"`
				Remaining int              `json:"remaining"`
			}{pairs, remaining}
			return e.emit(result, func(w io.Writer) {
				for _, p := range pairs {
					fmt.Fprintf(w, "%-8s -> %s\n", p.Original, p.Transposed)
				}
				if remaining > 0 {
					fmt.Fprintf(w, "... and %s more\n", humanize.Comma(int64(remaining)))
				}
			})
		},
	}
}

func capoCommand() *cli.Command {
	return &cli.Command{
		Name:      "capo",
		Usage:     "Suggest a capo fret for a transposition",
		ArgsUsage: "[CHORD...]",
		Flags:     []cli.Flag{semitonesFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			n := c.Int("semitones")

			res := chart.NewTokenizer(e.cfg).TokenizeList(c.Args().Slice())
			e.warn(res.Diagnostics)

			suggestion := transpose.SuggestCapo(res.Chords(), n)
			return e.emit(suggestion, func(w io.Writer) {
				fmt.Fprintln(w, suggestion.Description)
				if len(suggestion.Shapes) > 0 {
					fmt.Fprintf(w, "Shapes: %s (difficulty %.2f)\n",
						strings.Join(suggestion.Shapes, " "), suggestion.Difficulty)
				}
			})
		},
	}
}

func intervalCommand() *cli.Command {
	return &cli.Command{
		Name:      "interval",
		Usage:     "Semitones up from one key to another",
		ArgsUsage: "FROM TO",
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			if c.Args().Len() != 2 {
				return fmt.Errorf("interval needs two keys, got %d", c.Args().Len())
			}
			from, to := c.Args().Get(0), c.Args().Get(1)

			n, err := tonal.SemitonesBetween(from, to)
			if err != nil {
				return err
			}

			result := struct {
				From      string `json:"from"`
				To        string `json:"to"`
				Semitones int    `json:"semitones"`
				Capo      string `json:"capo"`
			}{from, to, n, transpose.DescribeCapo(transpose.CalculateCapo(n))}
			return e.emit(result, func(w io.Writer) {
				fmt.Fprintf(w, "%s to %s: up %s (%s)\n", from, to,
					english.Plural(n, "semitone", ""), result.Capo)
			})
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Infer the key and roman numerals of a progression",
		ArgsUsage: "[CHORD...]",
		Flags:     []cli.Flag{fileFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			chords, err := chordArgs(c, e)
			if err != nil {
				return err
			}

			analysis := harmony.NewAnalyzer(e.cfg).AnalyzeProgression(chords)
			if !e.json {
				e.warn(analysis.Diagnostics)
			}

			return e.emit(analysis, func(w io.Writer) {
				fmt.Fprintf(w, "Key:        %s (strength %.2f)\n", analysis.KeyName, analysis.KeyStrength)
				fmt.Fprintf(w, "Scale:      %s\n", strings.Join(analysis.Scale, " "))
				fmt.Fprintf(w, "Numerals:   %s\n", strings.Join(analysis.Symbols(), " "))
				if analysis.CommonName != "" {
					fmt.Fprintf(w, "Pattern:    %s (%s)\n", analysis.CommonName, analysis.ProgressionType)
				}
				fmt.Fprintf(w, "Confidence: %.0f%%\n", analysis.Confidence*100)
				printVariations(w, analysis.Variations)
			})
		},
	}
}

func errorsCommand() *cli.Command {
	return &cli.Command{
		Name:      "errors",
		Usage:     "Flag chords outside the key and suggest replacements",
		ArgsUsage: "[CHORD...]",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "key to check against (inferred when empty)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			chords, err := chordArgs(c, e)
			if err != nil {
				return err
			}

			report := harmony.NewAnalyzer(e.cfg).DetectErrors(chords, c.String("key"))
			if !e.json {
				e.warn(report.Diagnostics)
			}

			return e.emit(report, func(w io.Writer) {
				fmt.Fprintf(w, "Key: %s\n", report.KeyName)
				if len(report.Errors) == 0 {
					fmt.Fprintln(w, "Every chord fits the key")
					return
				}
				fmt.Fprintf(w, "%s outside the key\n", english.Plural(len(report.Errors), "chord", ""))
				for _, ce := range report.Errors {
					fmt.Fprintf(w, "  %s %s (%s chord)\n", ce.Chord, ce.Numeral, humanize.Ordinal(ce.Index+1))
					for _, s := range ce.Suggestions {
						fmt.Fprintf(w, "    -> %-7s %-6s %s (%.0f%%)\n", s.Chord, s.Numeral, s.Reason, s.Confidence*100)
					}
				}
			})
		},
	}
}

func reharmCommand() *cli.Command {
	return &cli.Command{
		Name:      "reharm",
		Usage:     "Propose reharmonized variations of a progression",
		ArgsUsage: "[CHORD...]",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "style", Usage: "simple, balanced, jazz or adventurous"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			chords, err := chordArgs(c, e)
			if err != nil {
				return err
			}

			style := e.cfg.ReharmonizationStyle
			if s := c.String("style"); s != "" {
				style = s
			}

			variations := harmony.NewAnalyzer(e.cfg).Reharmonize(chords, harmony.ParseStyle(style))
			return e.emit(variations, func(w io.Writer) {
				if len(variations) == 0 {
					fmt.Fprintln(w, "No variations for this progression")
					return
				}
				printVariations(w, variations)
			})
		},
	}
}

func printVariations(w io.Writer, variations []harmony.ProgressionVariation) {
	for _, v := range variations {
		fmt.Fprintf(w, "[%s] %s: %s\n", v.Difficulty, v.Name, strings.Join(v.Chords, " "))
		fmt.Fprintf(w, "    %s\n", v.Description)
	}
}
