package rethinkgo

import "fmt"

// Config holds the options a Session was constructed with, after Options
// have been applied to its zero value.
type Config struct {
	Database string
	Password string
}

// String returns Config without the password, safe to put in logs, mirroring
// the teacher's conn.Config.String redaction.
func (c Config) String() string {
	return fmt.Sprintf("rethinkgo.Config{Database:%q}", c.Database)
}

// Option configures a Session at Connect time.
type Option func(*Config)

// Database selects the default database new queries run against when a
// term doesn't select one itself (e.g. reql.Table without a DB prefix).
func Database(name string) Option {
	return func(c *Config) { c.Database = name }
}

// AuthPassword sets the password presented during connection setup. It has
// no effect against the minimal V0.1 handshake this module implements
// (there is no auth-key negotiation to send it over) but is accepted and
// redacted from Config.String for forward compatibility with a fuller
// handshake.
func AuthPassword(password string) Option {
	return func(c *Config) { c.Password = password }
}
