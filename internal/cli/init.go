package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/apkenv-launcher/internal/config"
)

func newInitCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := config.NewStore(root.configPath)
			if err != nil {
				return err
			}
			cfg := config.Config{}.WithDefaults()
			applyFlags(&cfg, root)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if force {
				err = store.Save(cfg)
			} else {
				// The existence check runs under the store lock so two
				// concurrent inits cannot both write.
				err = store.Update(func(cur *config.Config) error {
					if store.Exists() {
						return fmt.Errorf("config already exists at %s (use --force to overwrite)", store.Path())
					}
					*cur = cfg
					return nil
				})
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", store.Path())

			if err := os.MkdirAll(cfg.ApkDir, 0o755); err != nil {
				return fmt.Errorf("create apk dir: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Put packages in %s\n", cfg.ApkDir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
