package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rethinkgo"
	"rethinkgo/reql"
)

func newTablesCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in the default database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd.Context(), cfg, os.Stdout)
		},
	}
}

func runTables(ctx context.Context, cfg *rootConfig, w io.Writer) error {
	s, err := connectFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	names, err := rethinkgo.Run[[]string](ctx, s, reql.DB(cfg.database).TableList())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(names)
}
