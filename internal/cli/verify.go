package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/checkpack/checkpack/internal/expect"
	"github.com/checkpack/checkpack/internal/manifest"
	"github.com/checkpack/checkpack/internal/report"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Root string // directory subject paths resolve against
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <manifest>",
		Short: "Run post-build verification",
		Long: `Verify that a build produced its expected artifacts.

Loads a YAML check manifest, evaluates every expectation against the
built output, and reports all failures in one consolidated result.
Verification never stops at the first failure.

Exit codes:
  0 - All expectations held
  1 - One or more expectations failed
  2 - Command error (missing manifest, invalid schema, etc.)

Examples:
  checkpack verify checks.yaml
  checkpack verify checks.yaml --root ./build
  checkpack verify checks.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "directory subject paths resolve against")

	return cmd
}

func runVerify(opts *VerifyOptions, manifestPath string, cmd *cobra.Command) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid manifest", err)
	}

	reg, err := manifest.Build(m, opts.Root)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid manifest", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	// The single verification hook: one runner, one pass, after the
	// build that produced the artifacts has finished.
	outcomes, err := expect.NewRunner(logger).Run(reg)
	if err != nil {
		return WrapExitError(ExitCommandError, "verification could not run", err)
	}
	rep := report.New(m.Unit, outcomes)

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: rep}
		if !rep.Pass() {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_VERIFY_FAILED",
				Message: fmt.Sprintf("%d expectation(s) failed", rep.Failed),
			}
		}
		if err := writeJSON(w, resp); err != nil {
			return err
		}
	} else {
		rep.Render(w)
	}

	if !rep.Pass() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", rep.Failed))
	}
	return nil
}
