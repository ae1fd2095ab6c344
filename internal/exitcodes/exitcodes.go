// Package exitcodes defines the process exit codes used by conda-env-detector.
package exitcodes

const (
	Success        = 0
	GeneralError   = 1
	UsageError     = 2
	ConfigError    = 3
	DiscoveryError = 4
)
