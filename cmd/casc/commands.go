package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/coachassist/backend/internal/casfile"
	"github.com/coachassist/backend/internal/clang"
	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var rootCmd = &cobra.Command{
	Use:           "casc",
	Short:         "Offline tools for coach assistant strategy files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check <file.cas>...",
	Short: "Report malformed lines in strategy files",
	Long: `Load each strategy file and list every line that could not be used.

Exit Codes:
  0 = All files are clean
  1 = At least one file has diagnostics
  2 = Error (missing file, unreadable input)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var (
	fmtWrite bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.cas>",
	Short: "Rewrite a strategy file in canonical form",
	Long: `Load a strategy file and print it back in canonical form: sorted
sections, rounded numbers, dropped malformed lines.

Examples:
  casc fmt plans/442.cas
  casc fmt -w plans/442.cas`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

var (
	genOutput            string
	genOptionsFile       string
	genAddPlayOn         bool
	genEnableShooting    bool
	genFreedomRadius     float64
	genPositioningRadius float64
	genRulePrefix        string
	genCondition         string
)

var generateCmd = &cobra.Command{
	Use:   "generate <file.cas>",
	Short: "Generate CLang rules from a strategy file",
	Long: `Generate the CLang rule set for a strategy file.

Options are read from --options (YAML) when given, then overridden by any
flag set on the command line. The output defaults to the input path with a
.clang extension; use "-o -" for stdout.

Examples:
  casc generate plans/442.cas
  casc generate plans/442.cas --add-play-on --freedom-radius 5 -o -
  casc generate plans/442.cas --options rules.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	evalPlayer string
	evalBall   string
)

var evalCmd = &cobra.Command{
	Use:   "eval <file.cas>",
	Short: "Print where a player stands for a ball position",
	Long: `Evaluate a player's target position for a ball position, in field
coordinates.

Examples:
  casc eval plans/442.cas --player 5 --ball 10,-4
  casc eval plans/442.cas --player A --ball 0,0`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false,
		"Write the result back to the file instead of stdout")

	defaults := clang.DefaultOptions()
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "",
		"Output file (default: input with .clang extension, '-' for stdout)")
	generateCmd.Flags().StringVar(&genOptionsFile, "options", "",
		"YAML file with generation options")
	generateCmd.Flags().BoolVar(&genAddPlayOn, "add-play-on", defaults.AddPlayOn,
		"Only position players in play_on mode")
	generateCmd.Flags().BoolVar(&genEnableShooting, "shooting", defaults.EnableShooting,
		"Emit the shooting region and rule")
	generateCmd.Flags().Float64Var(&genFreedomRadius, "freedom-radius", defaults.FreedomRadius,
		"Release players when the ball is this close (<= 0 disables)")
	generateCmd.Flags().Float64Var(&genPositioningRadius, "positioning-radius", defaults.PositioningRadius,
		"Target a disc of this radius instead of a point (<= 0 disables)")
	generateCmd.Flags().StringVar(&genRulePrefix, "prefix", defaults.RulePrefix,
		"Text inserted after RULE_ in positioning rule names")
	generateCmd.Flags().StringVar(&genCondition, "condition", defaults.CustomCondition,
		"Raw CLang condition ANDed into every positioning rule")

	evalCmd.Flags().StringVar(&evalPlayer, "player", "",
		"Player label as written in .cas files (1-9, A, B)")
	evalCmd.Flags().StringVar(&evalBall, "ball", "0,0",
		"Ball position as x,y")
	_ = evalCmd.MarkFlagRequired("player")

	rootCmd.AddCommand(checkCmd, fmtCmd, generateCmd, evalCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

type diagnosticsError struct {
	count int
}

func (e *diagnosticsError) Error() string {
	return fmt.Sprintf("%d diagnostics", e.count)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	total := 0
	for _, path := range args {
		diags, err := casfile.ReadFile(path, strategy.NewModel())
		if err != nil {
			return err
		}
		for _, d := range diags {
			fmt.Fprintf(out, "%s:%d: %s: %s\n", path, d.Line, d.Reason, d.Text)
		}
		total += len(diags)
	}
	if total > 0 {
		return &diagnosticsError{count: total}
	}
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	m, err := load(cmd, path)
	if err != nil {
		return err
	}
	if fmtWrite {
		return casfile.WriteFile(path, m)
	}
	return casfile.Write(cmd.OutOrStdout(), m)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}
	m, err := load(cmd, path)
	if err != nil {
		return err
	}

	gen := clang.NewGenerator(m, opts)
	target := genOutput
	if target == "" {
		target = casfile.ExportName(path)
	}
	if target == "-" {
		_, err := gen.WriteTo(cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create rules file: %w", err)
	}
	if _, err := gen.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close rules file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", target)
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	player, err := parsePlayer(evalPlayer)
	if err != nil {
		return err
	}
	ball, err := parsePoint(evalBall)
	if err != nil {
		return err
	}
	m, err := load(cmd, args[0])
	if err != nil {
		return err
	}

	label, err := strategy.PlayerLabel(player)
	if err != nil {
		return err
	}
	pos, partition, ok := m.PositionFor(player, ball)
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintf(out, "player %c: no position for ball (%s, %s)\n",
			label, geometry.FormatNumber(ball.X), geometry.FormatNumber(ball.Y))
		return nil
	}
	fmt.Fprintf(out, "player %c: (%s, %s) via %s\n",
		label, geometry.FormatNumber(pos.X), geometry.FormatNumber(pos.Y), partition)
	return nil
}

// load reads a strategy file, reporting diagnostics on stderr.
func load(cmd *cobra.Command, path string) (*strategy.Model, error) {
	m := strategy.NewModel()
	diags, err := casfile.ReadFile(path, m)
	if err != nil {
		return nil, err
	}
	reportDiagnostics(cmd.ErrOrStderr(), path, diags)
	return m, nil
}

func reportDiagnostics(w io.Writer, path string, diags casfile.Diagnostics) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: %s:%d: %s\n", path, d.Line, d.Reason)
	}
}

func parsePlayer(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 1 {
		if i, ok := strategy.ParsePlayerLabel(rune(s[0])); ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid player %q: want 1-9, A or B", s)
}

func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return geometry.Point{}, fmt.Errorf("invalid point %q: not finite", s)
	}
	return geometry.NewPoint(x, y), nil
}
