package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool // human readable output instead of JSON lines
}

// RollingFile configures one lumberjack managed file.
type RollingFile struct {
	Name       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog string `toml:"access"`
	ErrorLog  string `toml:"error"`
	InfoLog   string `toml:"info"`
	TraceLog  string `toml:"trace"`
	WarnLog   string `toml:"warn"`

	MaxSize    int `toml:"maxSize"`
	MaxBackups int `toml:"maxBackups"`
	MaxAge     int `toml:"maxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole writes the fiber access log to the console.
	// Does not overrule Console.Enabled.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `toml:"file"`
}

func (f LogFile) rolling(name string) RollingFile {
	return RollingFile{Name: name, MaxSize: f.MaxSize, MaxBackups: f.MaxBackups, MaxAge: f.MaxAge}
}
