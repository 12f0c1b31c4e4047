package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// rootConfig holds the connection flags shared by every subcommand,
// mirroring the teacher's rootConfig in cmd/r-cli/root.go.
type rootConfig struct {
	host     string
	port     int
	database string
	password string
	timeout  time.Duration
}

func (c *rootConfig) endpoint() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

func newRootCmd() *cobra.Command {
	cfg := &rootConfig{}
	cmd := &cobra.Command{
		Use:           "rethinkgo-cli",
		Short:         "Minimal driver for the rethinkgo client library",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// bare invocation on an interactive terminal: show help
			// instead of erroring, same as the teacher's root command.
			if term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec
				return cmd.Help()
			}
			return fmt.Errorf("rethinkgo-cli: no subcommand given (try --help)")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.resolveEnvVars(cmd.Flags().Changed)
		},
	}
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.AddCommand(newStatusCmd(cfg))
	cmd.AddCommand(newDBsCmd(cfg))
	cmd.AddCommand(newTablesCmd(cfg))
	cmd.AddCommand(newGetCmd(cfg))
	cmd.AddCommand(newScanCmd(cfg))

	f := cmd.PersistentFlags()
	f.StringVarP(&cfg.host, "host", "H", "localhost", "server host")
	f.IntVarP(&cfg.port, "port", "P", 28015, "server port")
	f.StringVarP(&cfg.database, "db", "d", "test", "default database")
	f.StringVarP(&cfg.password, "password", "p", "", "password (or RETHINKGO_PASSWORD env)")
	f.DurationVarP(&cfg.timeout, "timeout", "t", 30*time.Second, "connect timeout")

	return cmd
}

// resolveEnvVars applies env var values for flags not explicitly set via
// CLI, mirroring the teacher's rootConfig.resolveEnvVars.
func (c *rootConfig) resolveEnvVars(changed func(string) bool) error {
	if !changed("host") {
		if v := os.Getenv("RETHINKGO_HOST"); v != "" {
			c.host = v
		}
	}
	if !changed("password") {
		if v := os.Getenv("RETHINKGO_PASSWORD"); v != "" {
			c.password = v
		}
	}
	if !changed("port") {
		if v := os.Getenv("RETHINKGO_PORT"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("RETHINKGO_PORT %q: not a valid port number", v)
			}
			c.port = n
		}
	}
	return nil
}
