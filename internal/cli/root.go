// Package cli implements the dblmodel command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *zap.Logger
}

// NewRootCmd creates the top-level "dblmodel" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dblmodel",
		Short: "Validate models of double theories",
		Long: "dblmodel loads models of double theories from YAML files, checks that\n" +
			"every generator is well typed, and infers objects that are missing.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newTheoriesCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newInferCmd(a))
	root.AddCommand(newWatchCmd(a))

	return root
}

// setup loads the configuration and builds the logger before a subcommand
// runs. Flags set on the command line take precedence over config.yaml.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	v, err := loadConfig(a.flags.configDir)
	if err != nil {
		return exitErr(exitSysError, err)
	}
	if a.flags.jsonMode {
		v.Set(cfgKeyOutput, outputJSON)
	}
	if a.flags.logLevel != "" {
		v.Set(cfgKeyLogLevel, a.flags.logLevel)
	}
	if f := cmd.Flags().Lookup("infer"); f != nil {
		if err := v.BindPFlag(cfgKeyInfer, f); err != nil {
			return exitErr(exitSysError, err)
		}
	}
	if err := checkConfig(v); err != nil {
		return exitErr(exitUserError, err)
	}
	logger, err := newLogger(v.GetString(cfgKeyLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return exitErr(exitUserError, err)
	}
	a.config = v
	a.logger = logger
	return nil
}

func (a *app) jsonOutput() bool {
	return a.config.GetString(cfgKeyOutput) == outputJSON
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	os.Exit(exitCode(err, root.ErrOrStderr()))
}

// exitCode prints err, unless it is silent, and maps it to an exit code.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitSuccess
	}
	var ce *codeError
	if errors.As(err, &ce) {
		if ce.err != nil {
			fmt.Fprintln(stderr, "error:", ce.err)
		}
		return ce.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return exitUserError
}

// codeError carries the exit code for a failed command. A nil err means
// the command already reported the failure.
type codeError struct {
	code int
	err  error
}

func (e *codeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *codeError) Unwrap() error { return e.err }

func exitErr(code int, err error) error {
	return &codeError{code: code, err: err}
}
