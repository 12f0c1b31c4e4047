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

func newDBsCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "dbs",
		Short: "List databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDBs(cmd.Context(), cfg, os.Stdout)
		},
	}
}

func runDBs(ctx context.Context, cfg *rootConfig, w io.Writer) error {
	s, err := connectFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	names, err := rethinkgo.Run[[]string](ctx, s, reql.DBList())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(names)
}
