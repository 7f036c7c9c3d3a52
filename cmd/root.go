package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/config"
	"github.com/sells-group/layout-cli/internal/layout"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "layout-cli",
	Short: "Subdivide a site boundary into roads, blocks and parcels",
	Long:  "Generates road networks inside a site boundary, carves the remaining land into blocks and green space, tiles blocks into parcels and exports drawings, shapefiles and parcel schedules.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadFile(configPath)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func newEngine(c *config.Config) *layout.Engine {
	return layout.New(
		layout.WithWorkers(c.Engine.Workers),
		layout.WithSeed(c.Engine.Seed),
		layout.WithAmplitude(c.Engine.Jitter),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./layout.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
