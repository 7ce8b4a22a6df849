package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	// DebugEnvVar switches logging to debug level when set to "true".
	DebugEnvVar = "DEBUG_LOGGING"
)

// Config holds the runtime settings shared by every command.
type Config struct {
	// Dir is where the ID database files are looked up.
	Dir string
	// Stdout receives generated tables and listings.
	Stdout io.Writer
	// Stderr receives log output.
	Stderr io.Writer
	Debug  bool
}

// NewConfig returns the settings for the current process: the working directory,
// standard streams and the debug flag from the environment.
func NewConfig() *Config {
	return &Config{
		Dir:    ".",
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Debug:  os.Getenv(DebugEnvVar) == "true",
	}
}

// SetupLogging points logrus at Stderr and applies the debug level.
func (c *Config) SetupLogging() {
	if c.Stderr != nil {
		logrus.SetOutput(c.Stderr)
	}
	if c.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}
