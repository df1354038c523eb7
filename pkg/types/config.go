package types

// Supported store backends. BackendAuto probes for the SQLite backend at
// startup and falls back to the plain-file store when it is unavailable; the
// choice is made once per session.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendAuto   = "auto"
)

// knownBackends lists the backend names Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendFile:   true,
	BackendAuto:   true,
}

// Config holds backend selection and parameters for opening a store.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
