package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/drawing"
	"github.com/sells-group/layout-cli/internal/export"
	"github.com/sells-group/layout-cli/internal/plan"
)

var (
	generateOut     string
	generateFormats string
	generatePrefix  string
)

var generateCmd = &cobra.Command{
	Use:   "generate <plan>",
	Short: "Generate a layout from a plan document and export it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateOut != "" {
			cfg.Output.Dir = generateOut
		}
		if generateFormats != "" {
			cfg.Output.Formats = strings.Split(generateFormats, ",")
		}
		if err := cfg.Validate("generate"); err != nil {
			return err
		}

		p, err := plan.Load(args[0], cfg.Layout)
		if err != nil {
			return err
		}
		boundary, err := p.SiteBoundary()
		if err != nil {
			return err
		}

		res, err := newEngine(cfg).Run(cmd.Context(), boundary, p.Parameters)
		if err != nil {
			return eris.Wrap(err, "generate")
		}

		prefix := generatePrefix
		if prefix == "" {
			prefix = outputPrefix(p.Name, args[0])
		}
		opts := drawing.DefaultOptions()
		opts.Locale = cfg.Output.Locale
		paths, err := export.Write(cfg.Output.Dir, prefix, res, cfg.Output.Formats, opts)
		if err != nil {
			return err
		}

		zap.L().Info("layout generated",
			zap.String("run_id", res.RunID),
			zap.String("plan", p.Name),
			zap.Int("parcels", res.Stats.Parcels),
			zap.Strings("files", paths),
		)

		f := drawing.NewFormatter(cfg.Output.Locale)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run %s: %d roads, %d blocks, %d parcels (%s parcel area, %s efficiency)\n",
			res.RunID, res.Stats.Roads, res.Stats.Blocks, res.Stats.Parcels,
			f.Area(res.Stats.ParcelArea), f.Percent(res.Stats.Efficiency))
		for _, path := range paths {
			fmt.Fprintln(out, path)
		}
		return nil
	},
}

// outputPrefix derives a file prefix from the plan name, or the plan file
// name when the plan is unnamed.
func outputPrefix(name, path string) string {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		}
		return -1
	}, name)
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output directory (default from config)")
	generateCmd.Flags().StringVar(&generateFormats, "format", "", "comma-separated output formats: geojson, shp, xlsx, wkt (default from config)")
	generateCmd.Flags().StringVar(&generatePrefix, "prefix", "", "output file prefix (default from plan name)")
	rootCmd.AddCommand(generateCmd)
}
