package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dblmodel/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Revalidate a model file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, args[0])
		},
	}
	cmd.Flags().Bool("infer", false, "infer missing objects before validating")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, path string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	w, err := watch.New(path, watch.Options{
		Infer: a.config.GetBool(cfgKeyInfer),
		OnResult: func(r watch.Result) {
			if r.Err != nil {
				fmt.Fprintf(out, "%s: %v\n", path, r.Err)
				return
			}
			_ = writeReport(out, path, r.Report, a.jsonOutput())
		},
	}, a.logger)
	if err != nil {
		return exitErr(exitSysError, err)
	}
	return w.Run(ctx)
}
