package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/WoodBOM/internal/app"
	"github.com/piwi3910/WoodBOM/internal/engine"
	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/piwi3910/WoodBOM/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath    string
	inventoryPath string
	logLevel      string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "woodbom",
		Short:         "Wood bill of materials and cut-list optimizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "config file (json, yaml or toml)")
	root.PersistentFlags().StringVar(&opts.inventoryPath, "inventory", "", "material price inventory (default ~/.woodbom/inventory.json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "development logging at debug level")

	root.AddCommand(
		newReportCmd(opts),
		newCompareCmd(opts),
		newConfigCmd(opts),
		newInventoryCmd(opts),
	)
	return root
}

// loadApp reads config and inventory and builds the logger.
func loadApp(opts *globalOptions) (*app.App, error) {
	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	invPath, err := inventoryPath(opts)
	if err != nil {
		return nil, err
	}
	inv, err := project.LoadInventory(invPath)
	if err != nil {
		logger.Warn("inventory not loaded, using default prices", zap.String("path", invPath), zap.Error(err))
		inv = model.DefaultInventory()
	}
	return app.New(cfg, &inv, logger), nil
}

func inventoryPath(opts *globalOptions) (string, error) {
	if opts.inventoryPath != "" {
		return opts.inventoryPath, nil
	}
	return project.DefaultInventoryPath()
}

// settingsFlags are the per-run overrides of the configured settings.
type settingsFlags struct {
	price     float64
	currency  string
	kerf      int
	maxRaw    int
	snap      int
	noSnap    bool
	algorithm string
	material  string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.price, "price", 0, "unit price per m3")
	cmd.Flags().StringVar(&f.currency, "currency", "", "currency label")
	cmd.Flags().IntVar(&f.kerf, "kerf", 0, "saw kerf in mm added per cut")
	cmd.Flags().IntVar(&f.maxRaw, "max-length", 0, "longest raw board in mm")
	cmd.Flags().IntVar(&f.snap, "snap", 0, "snap height and width to this interval in mm")
	cmd.Flags().BoolVar(&f.noSnap, "no-snap", false, "round height and width to the millimetre")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "packing algorithm: first-fit or best-fit")
	cmd.Flags().StringVar(&f.material, "material", "", "material for STL meshes")
}

// apply copies the flags the user set onto the app config.
func (f *settingsFlags) apply(cmd *cobra.Command, a *app.App) {
	s := &a.Config.Settings
	changed := cmd.Flags().Changed
	if changed("price") {
		s.PricePerM3 = f.price
	}
	if changed("currency") {
		s.Currency = f.currency
	}
	if changed("kerf") {
		s.SawKerf = f.kerf
	}
	if changed("max-length") {
		s.MaxRawLength = f.maxRaw
	}
	if changed("snap") {
		s.SnapInterval = f.snap
		s.UseSnapping = true
	}
	if f.noSnap {
		s.UseSnapping = false
	}
	if changed("algorithm") {
		s.Algorithm = model.Algorithm(f.algorithm)
	}
	if changed("material") {
		a.Material = f.material
	}
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var (
		flags   settingsFlags
		outDir  string
		name    string
		formats []string
	)

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Measure the parts of a file and write the cost report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()

			flags.apply(cmd, a)
			if cmd.Flags().Changed("out") {
				a.Config.OutputDir = outDir
			}
			if cmd.Flags().Changed("name") {
				a.Config.ReportName = name
			}
			if cmd.Flags().Changed("format") {
				a.Config.OutputFormats = formats
			}

			res, err := a.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: Desktop)")
	cmd.Flags().StringVar(&name, "name", "", "report file name without extension")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "output formats: csv, xlsx, pdf, labels, dxf")
	return cmd
}

func printSummary(w io.Writer, res app.RunResult) {
	rep := res.Report
	fmt.Fprintf(w, "%d parts, %d boards to buy\n", rep.TotalParts(), rep.TotalBoards())
	fmt.Fprintf(w, "Net total:      %s %s\n", rep.NetTotal.StringFixed(model.CostPlaces), rep.Currency)
	fmt.Fprintf(w, "Purchase total: %s %s\n", rep.PurchaseTotal.StringFixed(model.CostPlaces), rep.Currency)
	fmt.Fprintf(w, "Waste:          %.1f%%\n", rep.WastePercent)
	if len(rep.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d bodies: %s\n", len(rep.Skipped), strings.Join(rep.Skipped, ", "))
	}
	for _, warning := range rep.Warnings {
		fmt.Fprintln(w, "Warning:", warning)
	}
	for _, p := range res.Paths {
		fmt.Fprintln(w, "Wrote", p)
	}
}

func newCompareCmd(opts *globalOptions) *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "compare <file>",
		Short: "Compare packing algorithms and kerf widths for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()

			flags.apply(cmd, a)
			results, err := a.Compare(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printComparison(cmd.OutOrStdout(), results)
		},
	}
	flags.register(cmd)
	return cmd
}

func printComparison(w io.Writer, results []engine.ComparisonResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tBOARDS\tBOUGHT (mm)\tWASTE\tOVERSIZE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%d\n",
			r.Scenario.Name, r.BoardsUsed, r.PurchaseLength, r.WastePercent, r.OversizeBoards)
	}
	return tw.Flush()
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			}
			if err := project.SaveAppConfig(opts.configPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", opts.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	exportCmd := &cobra.Command{
		Use:   "export <backup.json>",
		Short: "Back up the configuration and material inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], a.Config, *a.Inventory); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", args[0])
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore the configuration and material inventory from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			invPath, err := inventoryPath(opts)
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(opts.configPath, backup.Config); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			if err := project.SaveInventory(invPath, backup.Inventory); err != nil {
				return fmt.Errorf("failed to write inventory: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", backup.CreatedAt)
			return nil
		},
	}

	cmd.AddCommand(initCmd, exportCmd, importCmd)
	return cmd
}

func newInventoryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage per-material unit prices",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List material prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inventoryPath(opts)
			if err != nil {
				return err
			}
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			mats := append([]model.MaterialPrice(nil), inv.Materials...)
			sort.Slice(mats, func(i, j int) bool { return mats[i].Name < mats[j].Name })

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMATERIAL\tPRICE/m3")
			for _, m := range mats {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\n", m.ID, m.Name, m.PricePerM3)
			}
			return tw.Flush()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <material> <price-per-m3>",
		Short: "Set the unit price of a material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var price float64
			if _, err := fmt.Sscanf(args[1], "%g", &price); err != nil || price < 0 {
				return fmt.Errorf("invalid price %q", args[1])
			}
			path, err := inventoryPath(opts)
			if err != nil {
				return err
			}
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			if m := inv.FindMaterialByName(args[0]); m != nil {
				m.PricePerM3 = price
			} else {
				inv.Materials = append(inv.Materials, model.NewMaterialPrice(args[0], price))
			}
			return project.SaveInventory(path, inv)
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <material>",
		Short: "Remove a material price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inventoryPath(opts)
			if err != nil {
				return err
			}
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			m := inv.FindMaterialByName(args[0])
			if m == nil {
				return errors.New("no such material: " + args[0])
			}
			id := m.ID
			kept := inv.Materials[:0]
			for _, mat := range inv.Materials {
				if mat.ID != id {
					kept = append(kept, mat)
				}
			}
			inv.Materials = kept
			return project.SaveInventory(path, inv)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <inventory.json>",
		Short: "Merge materials from another inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := inventoryPath(opts)
			if err != nil {
				return err
			}
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			merged, err := project.ImportInventory(args[0], inv)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", args[0], err)
			}
			return project.SaveInventory(path, merged)
		},
	}

	cmd.AddCommand(listCmd, setCmd, removeCmd, importCmd)
	return cmd
}
