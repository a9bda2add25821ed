package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultDocsPath is the default documentation path
	DefaultDocsPath = "docs"
	// DefaultOutputDir is the default output directory
	DefaultOutputDir = ".dtp"
	// DefaultResultsFile is the default results JSON file name
	DefaultResultsFile = "results.json"
	// DefaultHistoryFile is the default history database file name
	DefaultHistoryFile = "history.db"
	// DefaultWorkers is the default number of workers
	DefaultWorkers = 4
	// DefaultKeepRuns is how many runs the history database keeps
	DefaultKeepRuns = 50
	// DefaultConfigFile is the config file looked up when none is given
	DefaultConfigFile = "dtp.yaml"
)

// DefaultPathsToIgnore are the default directories to ignore when
// scanning for documentation
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	"site",
	"build",
	"dist",
}
