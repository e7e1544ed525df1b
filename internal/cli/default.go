package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runDefaultTui(cmd *cobra.Command, root *rootOptions) error {
	if args := cmd.Flags().Args(); len(args) > 0 {
		return fmt.Errorf("unexpected args %q (use `apkenv-launcher launch <name>` to start a package directly)", args)
	}
	return runUI(cmd, root)
}
