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

func newGetCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <key>",
		Short: "Fetch one document by primary key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), cfg, args[0], args[1], os.Stdout)
		},
	}
}

func runGet(ctx context.Context, cfg *rootConfig, table, key string, w io.Writer) error {
	s, err := connectFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	doc, err := rethinkgo.Run[map[string]any](ctx, s, reql.DB(cfg.database).Table(table).Get(key))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
