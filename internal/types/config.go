package types

type RunMode string

const (
	// ModeLocal runs the API server, the notification bus and the scheduler in one process
	ModeLocal RunMode = "local"
	// ModeAPI runs the API server and the notification bus
	ModeAPI RunMode = "api"
	// ModeWorker runs the notification bus and the scheduled sweep without the API server
	ModeWorker RunMode = "worker"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// SenderCodeMode selects how the sender segment of a letter reference is resolved
type SenderCodeMode string

const (
	// SenderCodeModeOrganization reads the sending organization's short form
	SenderCodeModeOrganization SenderCodeMode = "organization"
	// SenderCodeModeFixed uses a configured literal for every letter
	SenderCodeModeFixed SenderCodeMode = "fixed"
)
