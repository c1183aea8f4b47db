package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yuquest/internal/ui"
)

const Version = "0.1.0"

var (
	cfgFile string
	userID  string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "yq",
	Short:         "Gamified habit and task progression tracker",
	Long:          "Yu Quest tracks categorized tasks, a dual player/companion level system and a 9x9 mandala of personal-growth quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./yuquest.yaml)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "main_user", "User id")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newStartCmd(),
		newDoCmd(),
		newXPCmd(),
		newStatusCmd(),
		newYuCmd(),
		newGridCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
