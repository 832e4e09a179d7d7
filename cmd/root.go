package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appContext carries what PersistentPreRunE resolved for the running command.
type appContext struct {
	Config *ServiceConfig
	Logger *zap.Logger
}

var (
	cfgFile string
	app     = &appContext{Logger: zap.NewNop()}
)

var rootCmd = &cobra.Command{
	Use:   "secscan",
	Short: "Website security posture scanner",
	Long: `secscan fetches a website, inspects its transport and security headers,
and reports a score, grade, risk level and remediation list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		app.Config = cfg
		app.Logger = logger
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// stderr sync errors are expected on some platforms
		_ = app.Logger.Sync()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.secscan.yaml)")
	rootCmd.PersistentFlags().String("log-level", defaultLogLvl, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}
