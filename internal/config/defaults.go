package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSourcePath is the default path scanned for testx files
	DefaultSourcePath = "."
	// DefaultReportFile is the default report file name
	DefaultReportFile = "report.json"
	// DefaultReportDir is the default directory for the run report
	DefaultReportDir = ".gotestx"
	// DefaultWorkers is the default number of expansion workers
	DefaultWorkers = 4
)

// DefaultPathsToIgnore are the default directories skipped when scanning
// for testx files.
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
}
