package cli

import (
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath string
	envFile    string
	apkDir     string
	cacheDir   string
	launcher   string
	order      string
	logLevel   string
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "apkenv-launcher",
		Short:         "Pick an Android package from a grid and start it with apkenv",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDefaultTui(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	flags.StringVar(&opts.envFile, "env-file", "", "Load APKENV_* variables from a dotenv file")
	flags.StringVar(&opts.apkDir, "apk-dir", "", "Directory to scan for packages (default: ./apks)")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "Icon cache and log directory (default: ./.apkenvui)")
	flags.StringVar(&opts.launcher, "launcher", "", "Runner command; the package path is appended (default: ./apkenv)")
	flags.StringVar(&opts.order, "order", "", "Grid order: fs (directory order) or name")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newInitCmd(opts),
		newListCmd(opts),
		newIconsCmd(opts),
		newLaunchCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
