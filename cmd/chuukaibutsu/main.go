package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/quantmind-br/chuukaibutsu/internal/app"
	"github.com/quantmind-br/chuukaibutsu/internal/config"
	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/tui"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
	"github.com/quantmind-br/chuukaibutsu/pkg/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger

	// Dependencies for testing
	osStat       = os.Stat
	execLookPath = exec.LookPath
	runEditor    = tui.Run
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chuukaibutsu [flags] PKGS_DIR [PKGS_DIR...]",
	Short: "Distribute cached conda packages into local channels",
	Long: `chuukaibutsu copies the package files of one or more conda package cache
directories into a local channel tree laid out as PREFIX/CHANNEL/SUBDIR.

The channel and subdirectory of every file are read from the urls.txt
manifest of the directory it lives in. With --index, the indexer runs once
for every channel that received a package.`,
	Version:       version.Short(),
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.chuukaibutsu/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Distribution flags
	rootCmd.Flags().StringP("prefix", "p", config.DefaultPrefix(), "Prefix for channel directories")
	rootCmd.Flags().BoolP("index", "i", false, "Index the channels after distributing packages")
	rootCmd.Flags().StringSlice("index-cmd", config.DefaultIndexCommand, "Indexer command, run with the channel directory appended")
	rootCmd.Flags().Bool("dry-run", false, "Print what would be copied and indexed without writing")
	rootCmd.Flags().Bool("progress", false, "Show a progress bar on stderr")
	rootCmd.Flags().Bool("record", false, "Keep a placement ledger under the prefix")

	// Bind flags to viper
	_ = viper.BindPFlag("output.prefix", rootCmd.Flags().Lookup("prefix"))
	_ = viper.BindPFlag("output.dry_run", rootCmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("output.progress", rootCmd.Flags().Lookup("progress"))
	_ = viper.BindPFlag("index.enabled", rootCmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("index.command", rootCmd.Flags().Lookup("index-cmd"))
	_ = viper.BindPFlag("state.enabled", rootCmd.Flags().Lookup("record"))

	// Add subcommands
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configEditCmd.Flags().Bool("accessible", false, "Use accessible forms for screen readers")
	configCmd.AddCommand(configShowCmd, configInitCmd, configEditCmd)
	versionCmd.Flags().Bool("json", false, "Print version information as JSON")

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func newLogger(cfg *config.Config) *utils.Logger {
	opts := utils.LoggerOptions{
		Level:   config.DefaultLogLevel,
		Format:  config.DefaultLogFormat,
		Verbose: verbose,
	}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
	}
	return utils.NewLogger(opts)
}

func run(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = newLogger(cfg)

	// Create context with cancellation
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	distributor, err := app.NewDistributor(app.DistributorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose:  verbose,
			DryRun:   cfg.Output.DryRun,
			Index:    cfg.Index.Enabled,
			Progress: cfg.Output.Progress,
			Record:   cfg.State.Enabled,
		},
		Config: cfg,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("failed to create distributor: %w", err)
	}

	_, err = distributor.Distribute(ctx, args)
	return err
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment",
	Long:  "Verifies that the indexer is installed, the prefix is writable and the config file loads.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking environment...")
		allPassed := true

		// Check 1: Config file
		fmt.Fprint(out, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			cfg = config.Default()
			allPassed = false
		} else {
			fmt.Fprintln(out, "OK")
		}

		// Check 2: Indexer on PATH
		fmt.Fprint(out, "  Indexer: ")
		if path, err := checkIndexer(cfg.Index.Command); err == nil {
			fmt.Fprintf(out, "OK (%s)\n", path)
		} else if cfg.Index.Enabled {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintln(out, "NOT FOUND (--index will fail)")
		}

		// Check 3: Write permissions for the prefix
		fmt.Fprint(out, "  Prefix: ")
		if dir, ok := checkPrefix(afero.NewOsFs(), cfg.Output.Prefix); ok {
			fmt.Fprintf(out, "OK (%s writable)\n", dir)
		} else {
			fmt.Fprintf(out, "FAILED (%s not writable)\n", dir)
			allPassed = false
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkIndexer resolves the indexer executable on PATH
func checkIndexer(argv []string) (string, error) {
	if len(argv) == 0 || argv[0] == "" {
		return "", errors.New("no indexer command configured")
	}
	return execLookPath(argv[0])
}

// checkPrefix reports whether the prefix, or the closest existing parent
// it would be created under, accepts new files
func checkPrefix(fs afero.Fs, prefix string) (string, bool) {
	dir := filepath.Clean(prefix)
	for {
		if info, err := osStat(dir); err == nil {
			if !info.IsDir() {
				return dir, false
			}
			return dir, utils.IsWritableDir(fs, dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir, false
		}
		dir = parent
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return nil
		}
		data, err := version.Get().JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return writeYAML(cmd.OutOrStdout(), cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := configPath()
		if err := config.WriteFile(path, config.Default(), force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the config file interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accessible, _ := cmd.Flags().GetBool("accessible")

		path := configPath()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return runEditor(tui.Options{
			Config:     cfg,
			Path:       path,
			Accessible: accessible,
			SaveFunc: func(c *config.Config) error {
				return config.WriteFile(path, c, true)
			},
		})
	},
}

// configPath returns the file that config init and config edit write to
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigFilePath()
}

func writeYAML(w io.Writer, cfg *config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
