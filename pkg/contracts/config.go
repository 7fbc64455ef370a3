package contracts

import "time"

// Config is the read side of the application configuration, backed by
// environment variables and an optional .env file.
type Config interface {
	Env(name string, defaultValue ...any) any
	Add(name string, configuration any)
	Get(path string, defaultValue ...any) any
	GetString(path string, defaultValue ...any) string
	GetInt(path string, defaultValue ...any) int
	GetBool(path string, defaultValue ...any) bool
	GetDuration(path string, defaultValue ...any) time.Duration
}
