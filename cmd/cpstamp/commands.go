package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/catalog"
	"github.com/lixenwraith/cpstamp/config"
	"github.com/lixenwraith/cpstamp/export"
	"github.com/lixenwraith/cpstamp/registry"
)

// openSeeded opens a category file and registers its catalog stamps
func (a *app) openSeeded(def catalog.CategoryDef) (*registry.Category, error) {
	cat, err := registry.Open(a.cfg.DataDir, def.Kind, def.Name, def.Key, registry.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if added := catalog.Seed(cat, def); added > 0 {
		a.logger.Debug("seeded category", zap.String("category", def.Name), zap.Int("added", added))
	}
	return cat, nil
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every stamp and whether it is earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, def := range c.Categories {
				cat, err := a.openSeeded(def)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s) %d/%d\n", def.Name, def.Key, cat.EarnedCount(), cat.Len())
				for _, r := range cat.Records() {
					mark := " "
					if r.Earned {
						mark = "x"
					}
					fmt.Fprintf(out, "  [%s] %3d  %s\n", mark, r.ID, r.Title)
				}
				if err := cat.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEarnCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "earn CATEGORY_KEY ID",
		Short: "Mark one stamp earned",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid stamp id %q: %w", args[1], err)
			}
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			def, err := a.categoryDef(c, args[0])
			if err != nil {
				return err
			}
			cat, err := a.openSeeded(def)
			if err != nil {
				return err
			}

			rec, ok := cat.Lookup(uint32(id))
			switch {
			case !ok:
				return errors.Join(fmt.Errorf("category %q has no stamp %d", def.Name, id), cat.Close())
			case cat.Earn(uint32(id)):
				fmt.Fprintf(cmd.OutOrStdout(), "earned %q\n", rec.Title)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%q already earned\n", rec.Title)
			}
			return cat.Close()
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear CATEGORY_KEY",
		Short: "Reset every stamp in a category to unearned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			def, err := a.categoryDef(c, args[0])
			if err != nil {
				return err
			}
			cat, err := a.openSeeded(def)
			if err != nil {
				return err
			}
			n := cat.EarnedCount()
			cat.ClearAll()
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d stamps in %s\n", n, def.Name)
			return cat.Close()
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror every category into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog()
			if err != nil {
				return err
			}
			store, err := export.Open(a.cfg.ExportDB, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, def := range c.Categories {
				cat, err := a.openSeeded(def)
				if err != nil {
					return err
				}
				saveErr := store.SaveCategory(def.Name, def.Kind, cat.Records())
				closeErr := cat.Close()
				if err := errors.Join(saveErr, closeErr); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d categories to %s\n", len(c.Categories), a.cfg.ExportDB)
			return nil
		},
	}
	cmd.Flags().String("db", config.NewViper().GetString(config.KeyExportDB), "SQLite database path")
	bindFlag(a.v, cmd, config.KeyExportDB, "db")
	return cmd
}

func newInitCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample catalog to the catalog path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Catalog
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := catalog.Write(path, catalog.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing catalog")
	return cmd
}
