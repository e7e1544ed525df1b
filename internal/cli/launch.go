package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
	"github.com/baaaaaaaka/apkenv-launcher/internal/launch"
)

func newLaunchCmd(root *rootOptions) *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "launch <name|path>",
		Short: "Start one package without the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(root)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			order, err := catalog.ParseOrder(cfg.Order)
			if err != nil {
				return err
			}
			path, err := resolvePackage(args[0], cfg.ApkDir, cfg.Suffix, order)
			if err != nil {
				return err
			}

			runner := launch.New(cfg.Launcher, cmd.OutOrStdout(), logger)
			pid, err := runner.Launch(path)
			if err != nil {
				return err
			}
			if detach {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Launched %s (pid %d)\n", path, pid)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			done := make(chan error, 1)
			go func() { done <- runner.Wait() }()
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				// The terminal delivers the interrupt to the child too.
				return <-done
			}
		},
	}
	cmd.Flags().BoolVar(&detach, "detach", false, "Return as soon as the package has started")
	return cmd
}

// resolvePackage accepts a path to a package file, or a file name or label
// from the package directory.
func resolvePackage(ref, dir, suffix string, order catalog.Order) (string, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref, nil
	}
	if strings.ContainsRune(ref, filepath.Separator) {
		return "", fmt.Errorf("package %s not found", ref)
	}

	names, err := catalog.Scan(dir, suffix, order)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, name := range names {
		if name == ref || name == ref+suffix {
			return filepath.Join(dir, name), nil
		}
		if strings.EqualFold(catalog.Label(name, suffix), ref) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no package named %q in %s", ref, dir)
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", fmt.Errorf("ambiguous package name %q: %s", ref, strings.Join(matches, ", "))
	}
}
