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

func newScanCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <table>",
		Short: "Stream every document in a table as newline-delimited JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), cfg, args[0], os.Stdout)
		},
	}
}

func runScan(ctx context.Context, cfg *rootConfig, table string, w io.Writer) error {
	s, err := connectFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cur, err := rethinkgo.RunCursor[map[string]any](ctx, s, reql.DB(cfg.database).Table(table))
	if err != nil {
		return err
	}
	defer func() { _ = cur.Close(ctx) }()

	enc := json.NewEncoder(w)
	for cur.Next(ctx) {
		if err := enc.Encode(cur.Value()); err != nil {
			return err
		}
	}
	return cur.Err()
}
