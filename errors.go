package pummel

// Error format strings for unrecognized plugin types in a config
// file.
const (
	errUnknownStorageType  = "unknown storage type: %s"
	errUnknownNotifierType = "unknown notifier type: %s"
)
