package ports

// ConfigLocator finds the config file that applies to a directory.
type ConfigLocator interface {
	FindConfig(startDir string) (string, error)
}
