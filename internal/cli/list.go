package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/apkenv-launcher/internal/apk"
	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
	"github.com/baaaaaaaka/apkenv-launcher/internal/grid"
)

type listedEntry struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Path  string    `json:"path"`
	Icon  bool      `json:"icon"`
	Row   int       `json:"row"`
	Col   int       `json:"col"`
	Rect  grid.Rect `json:"rect"`
}

func newListCmd(root *rootOptions) *cobra.Command {
	var width, height int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the packages and their grid positions for a screen size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("--width and --height must be positive")
			}
			cfg, err := resolveConfig(root)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cache, err := apk.NewCache(cfg.CacheDir)
			if err != nil {
				return err
			}
			opts, err := catalogOptions(cfg, cache, logger)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			// The bottom row is the status line.
			cat.Arrange(arrangement(cfg, grid.Size{W: width, H: max(0, height-1)}))

			entries := make([]listedEntry, 0, cat.Len())
			for _, e := range cat.Entries {
				entries = append(entries, listedEntry{
					Name:  e.Name,
					Label: e.Assets.Label,
					Path:  e.Path,
					Icon:  e.HasIcon(),
					Row:   e.Cell.Row,
					Col:   e.Cell.Col,
					Rect:  e.Cell.Rect,
				})
			}

			if asJSON {
				out, err := json.MarshalIndent(map[string]any{"dir": cat.Dir, "entries": entries}, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			if len(entries) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No packages found in %s\n", cat.Dir)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ROW\tCOL\tRECT\tICON\tLABEL\tFILE")
			for _, e := range entries {
				icon := "-"
				if e.Icon {
					icon = "yes"
				}
				_, _ = fmt.Fprintf(w, "%d\t%d\t%d,%d %dx%d\t%s\t%s\t%s\n",
					e.Row, e.Col, e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H, icon, e.Label, e.Name)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Screen width in columns")
	cmd.Flags().IntVar(&height, "height", 24, "Screen height in rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
