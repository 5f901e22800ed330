package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/miniature/internal/application"
	"github.com/inovacc/miniature/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	loader  = config.NewLoader()
	cfg     config.Config
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   application.Name,
	Short: "Versioned packages stored in git repositories",
	Long: `Miniature distributes packages kept as subdirectories of git repositories.

Versions are tags named {root-dir}/{version}. Loading resolves a version
request (an exact tag, "latest" or a range such as ">=1.0.0,<2.0.0"),
checks the tag out and copies the package directory. Publishing commits a
package directory, tags it and pushes both.

Repositories are found through the registry file (.miniature/gitdbs.json),
which maps each repository URL to a local working copy.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = loader.Load(cfgFile)
		if err != nil {
			return err
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if used := loader.ConfigFileUsed(); used != "" {
			logger.Debug("config loaded", slog.String("file", used))
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if hint := errorHint(err); hint != "" {
			_, _ = fmt.Fprintln(os.Stderr, dimStyle.Render("Hint: "+hint))
		}

		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default %s)", config.DefaultFile))
	flags.String("registry", "", "registry file mapping repositories to working copies")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	cobra.CheckErr(loader.BindFlag("registry", flags.Lookup("registry")))
	cobra.CheckErr(loader.BindFlag("log_level", flags.Lookup("log-level")))
}
