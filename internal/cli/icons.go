package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/apkenv-launcher/internal/apk"
	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
)

func newIconsCmd(root *rootOptions) *cobra.Command {
	var clean bool

	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Extract package icons into the cache ahead of time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			out := cmd.OutOrStdout()

			if clean {
				n, err := cache.Clean()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "Removed %d cached icons\n", n)
			}

			order, err := catalog.ParseOrder(cfg.Order)
			if err != nil {
				return err
			}
			names, err := catalog.Scan(cfg.ApkDir, cfg.Suffix, order)
			if err != nil {
				return err
			}

			found := 0
			for _, name := range names {
				path := filepath.Join(cfg.ApkDir, name)
				_, ok, err := cache.Ensure(path)
				switch {
				case err != nil:
					logger.Warn("Failed to load icon", "apk", name, "err", err)
					_, _ = fmt.Fprintf(out, "error   %s\n", name)
				case ok:
					found++
					_, _ = fmt.Fprintf(out, "icon    %s\n", name)
				default:
					_, _ = fmt.Fprintf(out, "no icon %s\n", name)
				}
			}
			_, _ = fmt.Fprintf(out, "%d of %d packages have an icon in %s\n", found, len(names), cache.Dir())
			return nil
		},
	}
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove cached icons before extracting")
	return cmd
}
