// Package constants defines global constants used throughout bridgectl.
// It includes version information, paths, and configuration keys.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of bridgectl.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool and application
const ProjectName = "bridgectl"

// ConfigDirName is the name of the configuration directory in the user's home directory
const ConfigDirName = ".bridgectl"

// ConfigFileName is the name of the global configuration file
const ConfigFileName = "config.yaml"

// ConfigDirPath returns the full path to the global configuration directory.
func ConfigDirPath(homeDir string) string {
	return homeDir + "/" + ConfigDirName
}

// ConfigFilePath returns the full path to the global configuration file
func ConfigFilePath(homeDir string) string {
	return ConfigDirPath(homeDir) + "/" + ConfigFileName
}

// DiscoveryFileName is the well-known file the bridge writes into the OS temp
// directory to advertise its port, API key, and key header.
const DiscoveryFileName = "agentic_debugger.json"

// Environment represents the execution environment (e.g., CLI, simulator).
type Environment string

// Environment types for logger configuration
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)

// DefaultKeyHeader is the API key header name used when the discovery record
// does not specify one.
const DefaultKeyHeader = "X-Api-Key"

// ConfigCtxKeyType is the type for the config context key
type ConfigCtxKeyType string

// ConfigCtxKey is the key used to store config in context
const ConfigCtxKey ConfigCtxKeyType = "config"

// StartTimeCtxKeyType is the type for the start time context key
type StartTimeCtxKeyType string

// StartTimeCtxKey is the key used to store the command start time in context
const StartTimeCtxKey StartTimeCtxKeyType = "startTime"

// SessionDirName is the directory scanned for session YAML files, relative to
// the working directory or the user's home directory.
const SessionDirName = ".bridgectl"

// SessionFileExtensions lists the file extensions recognized as session files.
var SessionFileExtensions = []string{".yaml", ".yml"}
