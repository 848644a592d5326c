package clicommand

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/oleiade/reflections"
	"github.com/urfave/cli"

	"github.com/envrbw/envrbw/cliconfig"
	"github.com/envrbw/envrbw/core"
	"github.com/envrbw/envrbw/logger"
	"github.com/envrbw/envrbw/rbw"
)

const (
	// DefaultFolder is the password manager folder namespaces live in when
	// neither --folder nor ENVRBW_FOLDER says otherwise.
	DefaultFolder = "envrbw"
)

var ConfigFlag = cli.StringFlag{
	Name:   "config",
	Usage:  "Path to a configuration file",
	EnvVar: "ENVRBW_CONFIG",
}

var FolderFlag = cli.StringFlag{
	Name:   "folder",
	Value:  DefaultFolder,
	Usage:  "The password manager folder that holds namespace entries",
	EnvVar: "ENVRBW_FOLDER",
}

var RbwPathFlag = cli.StringFlag{
	Name:   "rbw-path",
	Value:  "rbw",
	Usage:  "Path to the rbw executable",
	EnvVar: "ENVRBW_RBW_PATH",
}

var LogLevelFlag = cli.StringFlag{
	Name:   "log-level",
	Value:  "notice",
	Usage:  "Set the log level, either debug, notice, info, error, warn, fatal",
	EnvVar: "ENVRBW_LOG_LEVEL",
}

var NoColorFlag = cli.BoolFlag{
	Name:   "no-color",
	Usage:  "Don't show colors in logging",
	EnvVar: "ENVRBW_NO_COLOR",
}

var DebugFlag = cli.BoolFlag{
	Name:   "debug",
	Usage:  "Enable debug mode. Synonym for `--log-level debug`",
	EnvVar: "ENVRBW_DEBUG",
}

// GlobalConfig is embedded in every command's config so the shared flags
// load the same way everywhere.
type GlobalConfig struct {
	Config   string `cli:"config" normalize:"filepath"`
	Folder   string `cli:"folder"`
	RbwPath  string `cli:"rbw-path"`
	LogLevel string `cli:"log-level"`
	NoColor  bool   `cli:"no-color"`
	Debug    bool   `cli:"debug"`
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		FolderFlag,
		RbwPathFlag,
		LogLevelFlag,
		NoColorFlag,
		DebugFlag,
	}
}

// DefaultConfigFilePaths returns the paths to search for a config file when
// --config isn't given, most specific first.
func DefaultConfigFilePaths() (paths []string) {
	if runtime.GOOS == "windows" {
		paths = []string{
			"$USERPROFILE\\AppData\\Local\\Envrbw\\envrbw.cfg",
			"C:\\envrbw\\envrbw.cfg",
		}
	} else {
		paths = []string{
			"$HOME/.config/envrbw/envrbw.cfg",
			"/usr/local/etc/envrbw/envrbw.cfg",
			"/etc/envrbw/envrbw.cfg",
		}
	}

	// Also check for an envrbw.cfg in the folder the binary is running in.
	pathToBinary, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err == nil {
		paths = append([]string{filepath.Join(pathToBinary, "envrbw.cfg")}, paths...)
	}

	return paths
}

// CreateLogger builds the logger a command action uses, configured from
// whatever LogLevel, Debug and NoColor fields the config carries.
func CreateLogger(cfg any) logger.Logger {
	printer := logger.NewTextPrinter(os.Stderr)

	if noColor, err := reflections.GetField(cfg, "NoColor"); noColor == true && err == nil {
		printer.Colors = false
	}

	l := logger.NewConsoleLogger(printer, os.Exit)

	if levelStr, err := reflections.GetField(cfg, "LogLevel"); err == nil {
		if s, ok := levelStr.(string); ok && s != "" {
			level, err := logger.ParseLevel(s)
			if err != nil {
				l.Fatal("%v", err)
			}
			l.SetLevel(level)
		}
	}

	// Debug wins over whatever log-level asked for
	if debug, err := reflections.GetField(cfg, "Debug"); debug == true && err == nil {
		l.SetLevel(logger.DEBUG)
	}

	return l
}

// setupLoggerAndConfig loads cfg from flags, environment variables and any
// config file, then builds the command's logger from it.
func setupLoggerAndConfig(c *cli.Context, cfg any) (logger.Logger, error) {
	loader := cliconfig.Loader{
		CLI:                    c,
		Config:                 cfg,
		DefaultConfigFilePaths: DefaultConfigFilePaths(),
	}
	if err := loader.Load(); err != nil {
		return nil, err
	}

	l := CreateLogger(cfg)

	if loader.File != nil {
		path, _ := loader.File.AbsolutePath()
		l.Debug("Loaded configuration from %s", path)
	}

	return l, nil
}

func newSession(l logger.Logger, g GlobalConfig) *core.Session {
	return &core.Session{
		Logger:  l,
		Secrets: rbw.NewClient(l, rbw.Config{Path: g.RbwPath}),
		Folder:  g.Folder,
	}
}
