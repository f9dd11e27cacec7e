package adapter

import (
	"os"

	logger "github.com/shuliangfu/logger"
	"github.com/shuliangfu/logger/internal/output"
)

// routing is the resolved set of dispatch targets. Auto routing inspects
// the environment exactly once, at construction; a logger never re-routes
// mid-life.
type routing struct {
	console  bool
	file     bool
	custom   bool
	filePath string
}

// resolveRouting decides the dispatch targets from the output
// configuration.
//
// With Auto enabled, an interactive stdout selects console-only output and
// a non-interactive stdout selects file-only output, falling back to the
// default log path when none is configured. Without Auto, the console is on
// unless explicitly disabled and the file target follows the configured
// path. A custom sink is always honored.
func resolveRouting(config *logger.Config) routing {
	custom := config.Output.Custom != nil

	if config.Output.Auto {
		if output.IsTerminal(os.Stdout) {
			return routing{console: true, custom: custom}
		}

		path := config.File.Path
		if path == "" {
			path = logger.DefaultAutoLogPath
		}

		return routing{file: true, custom: custom, filePath: path}
	}

	consoleOn := true
	if config.Output.Console != nil {
		consoleOn = *config.Output.Console
	}

	return routing{
		console:  consoleOn,
		file:     config.File.Path != "",
		custom:   custom,
		filePath: config.File.Path,
	}
}

// shouldUseColor decides whether console output is colorized. An explicit
// Color setting always wins; otherwise the NO_COLOR convention disables
// color, and color is used only for the color format on an interactive
// stdout. File output is never colorized.
func shouldUseColor(config *logger.Config, isFileTarget bool) bool {
	if isFileTarget {
		return false
	}

	if config.Color != nil {
		return *config.Color
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	return config.Format == logger.ColorFormat && output.IsTerminal(os.Stdout)
}
