package config

const CurrentVersion = 1

// Config is the persisted launcher configuration. Zero values mean "use the
// default"; see WithDefaults.
type Config struct {
	Version       int      `json:"version"`
	ApkDir        string   `json:"apkDir,omitempty"`
	CacheDir      string   `json:"cacheDir,omitempty"`
	Suffix        string   `json:"suffix,omitempty"`
	Launcher      []string `json:"launcher,omitempty"`
	Border        *int     `json:"border,omitempty"`
	CellWidth     int      `json:"cellWidth,omitempty"`
	CellHeight    int      `json:"cellHeight,omitempty"`
	MinCellWidth  int      `json:"minCellWidth,omitempty"`
	MinCellHeight int      `json:"minCellHeight,omitempty"`
	IconMaxWidth  int      `json:"iconMaxWidth,omitempty"`
	IconMaxHeight int      `json:"iconMaxHeight,omitempty"`
	Order         string   `json:"order,omitempty"`
	Watch         *bool    `json:"watch,omitempty"`
	ExitOnLaunch  bool     `json:"exitOnLaunch,omitempty"`
	LogLevel      string   `json:"logLevel,omitempty"`
}

const (
	DefaultApkDir        = "./apks"
	DefaultCacheDir      = "./.apkenvui"
	DefaultSuffix        = ".apk"
	DefaultBorder        = 1
	DefaultMinCellWidth  = 14
	DefaultMinCellHeight = 5
	DefaultIconMax       = 16
	DefaultLogLevel      = "info"
)

var DefaultLauncher = []string{"./apkenv"}
