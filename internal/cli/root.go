// Package cli is the command-line surface: it routes arguments to an operation,
// checks the invocation and reports failures.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mccahan/geojson-clipping/internal/buildinfo"
	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/infra/config"
	"github.com/mccahan/geojson-clipping/internal/infra/stdinput"
)

const appName = "geojson-clipping"

// Execute runs the process with real standard streams and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], Deps{
		Stdin:         stdinput.New(os.Stdin),
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		LoadConfig:    loadConfig,
		VerboseErrors: buildinfo.IsDev(),
	})
	stop()
	os.Exit(code)
}

func loadConfig() (domain.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg, _, err := config.Discover(config.NewFinder(), wd)
	return cfg, err
}

// Run executes one invocation and returns its exit status.
func Run(ctx context.Context, args []string, deps Deps) int {
	deps = deps.withDefaults()
	if args == nil {
		args = []string{}
	}

	root := newRootCmd(deps)
	root.SetArgs(args)
	root.SetOut(deps.Stdout)
	root.SetErr(deps.Stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = root
	}
	return reportFailure(deps.Stderr, NewTheme(deps.Stderr), cmd, err, deps.VerboseErrors)
}

func newRootCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName + " <command> [geojson...]",
		Short:         "Union, intersection, difference and xor of GeoJSON polygons",
		Version:       buildinfo.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,

		SuggestionsMinimumDistance: 2,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(c *cobra.Command, args []string) error {
			return unknownCommand(c, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(flagError)

	var opts globalOptions
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "write the result to `path` instead of stdout")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress warnings")

	for _, spec := range domain.Operations() {
		cmd.AddCommand(newOperationCmd(spec, &opts, deps))
	}
	return cmd
}

type globalOptions struct {
	output string
	quiet  bool
}

func flagError(_ *cobra.Command, err error) error {
	return &domain.OpError{
		Op:   "cli.parse_flags",
		Kind: domain.KindUsage,
		Err:  err,
	}
}

func unknownCommand(c *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &domain.OpError{
			Op:   "cli.route",
			Kind: domain.KindUsage,
			Err:  errors.New(domain.MsgSpecifyCommand),
		}
	}

	msg := fmt.Sprintf("unknown command %q. %s", args[0], domain.MsgSpecifyCommand)
	if s := c.SuggestionsFor(args[0]); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}
	return &domain.OpError{
		Op:   "cli.route",
		Kind: domain.KindUsage,
		Err:  errors.New(msg),
	}
}
