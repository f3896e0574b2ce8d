// Package cli implements the boxpack command-line interface.
//
// The commands read box lists from files or flags, pack them into a
// fixed-width container and write the layout as a terminal preview, PDF,
// printable labels or DXF.
//
// # Commands
//
//   - pack: Pack boxes and optionally export or save the job
//   - compare: Pack the same boxes under several settings side by side
//   - config: Show or initialize ~/.boxpack/config.toml
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every placement the engine makes.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/piwi3910/BoxPack/internal/project"
)

const appName = "boxpack"

// maxRecentJobs bounds the recent job list kept in the config file.
const maxRecentJobs = 10

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "BoxPack packs boxes into a fixed-width container",
		Long:         `BoxPack places rectangular boxes into a container of fixed width and unbounded depth, keeping the packed depth as small as it can.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(appName + " {{.Version}}\n")
	if commit != "" {
		root.SetVersionTemplate(appName + " {{.Version}}\ncommit: " + commit + "\nbuilt: " + date + "\n")
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.boxpack/config.toml)")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.configCommand())

	return root
}

func (c *CLI) resolvedConfigPath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return project.DefaultConfigPath()
}

// loadConfig reads the app config. A missing file yields the defaults.
func (c *CLI) loadConfig() (model.AppConfig, error) {
	return project.LoadAppConfig(c.resolvedConfigPath())
}
