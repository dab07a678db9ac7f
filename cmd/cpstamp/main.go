// Command cpstamp inspects and edits stamp save files and runs the terminal popup demo
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/catalog"
	"github.com/lixenwraith/cpstamp/config"
	"github.com/lixenwraith/cpstamp/logging"
)

// app carries the resolved settings shared by every subcommand
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.NewViper(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "cpstamp",
		Short:         "Achievement stamp save files and popup demo",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	setupFlags(rootCmd, a)

	rootCmd.AddCommand(
		newListCommand(a),
		newEarnCommand(a),
		newClearCommand(a),
		newExportCommand(a),
		newInitCommand(a),
		newDemoCommand(a),
	)
	return rootCmd
}

func setupFlags(cmd *cobra.Command, a *app) {
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("data-dir", defaults.GetString(config.KeyDataDir), "User data directory holding .cpstamps/")
	cmd.PersistentFlags().String("catalog", defaults.GetString(config.KeyCatalog), "Stamp catalog TOML file")
	cmd.PersistentFlags().String("log-level", defaults.GetString(config.KeyLogLevel), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	bindFlag(a.v, cmd, config.KeyDataDir, "data-dir")
	bindFlag(a.v, cmd, config.KeyCatalog, "catalog")
	bindFlag(a.v, cmd, config.KeyLogLevel, "log-level")
	bindFlag(a.v, cmd, config.KeyLogFile, "log-file")
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func (a *app) init() error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// loadCatalog reads the configured catalog, falling back to the built-in sample when absent
func (a *app) loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(a.cfg.Catalog)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Info("catalog not found, using built-in sample", zap.String("catalog", a.cfg.Catalog))
		return catalog.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (a *app) categoryDef(c *catalog.Catalog, key string) (catalog.CategoryDef, error) {
	def, ok := c.Category(key)
	if !ok {
		return catalog.CategoryDef{}, fmt.Errorf("no category with key %q in catalog", key)
	}
	return def, nil
}
