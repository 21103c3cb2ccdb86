package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a model file is well typed",
		Long: "Validate loads a model file, builds the model in the theory it names,\n" +
			"and reports every defect. The exit status is 1 when the model is invalid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0])
		},
	}
	cmd.Flags().Bool("infer", false, "infer missing objects before validating")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, path string) error {
	m, err := loadModel(path)
	if err != nil {
		return err
	}
	if a.config.GetBool(cfgKeyInfer) && m.Discrete != nil {
		added, err := m.InferMissing()
		if err != nil {
			return exitErr(exitUserError, err)
		}
		a.logger.Debug("inferred objects", zap.String("file", path), zap.Int("added", len(added)))
	}

	r := m.Report()
	a.logger.Debug("validated model",
		zap.String("file", path),
		zap.String("theory", r.Theory),
		zap.Bool("valid", r.Valid),
	)
	if err := writeReport(cmd.OutOrStdout(), path, r, a.jsonOutput()); err != nil {
		return exitErr(exitSysError, err)
	}
	if !r.Valid {
		return exitErr(exitUserError, nil)
	}
	return nil
}
