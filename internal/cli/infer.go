package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInferCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "infer <file>",
		Short: "Declare the objects a model file refers to but omits",
		Long: "Infer adds an object declaration for every domain or codomain that is\n" +
			"not declared, typed by the theory. The completed file is written to\n" +
			"--output, or to standard output when no output is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfer(cmd, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the completed model file here")
	return cmd
}

func (a *app) runInfer(cmd *cobra.Command, path, out string) error {
	m, err := loadModel(path)
	if err != nil {
		return err
	}
	added, err := m.InferMissing()
	if err != nil {
		return exitErr(exitUserError, err)
	}
	for _, ob := range added {
		a.logger.Info("inferred object", zap.String("id", ob.ID), zap.String("type", ob.Type))
	}

	if out == "" {
		if err := m.File.Encode(cmd.OutOrStdout()); err != nil {
			return exitErr(exitSysError, err)
		}
		return nil
	}
	if err := m.File.Save(out); err != nil {
		return exitErr(exitSysError, fmt.Errorf("saving %s: %w", out, err))
	}
	if a.jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"file": out, "added": added})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d objects inferred\n", out, len(added))
	return nil
}
