package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rethinkgo"
)

func newStatusCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server info and connection status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), cfg, os.Stdout)
		},
	}
}

type statusInfo struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Status string `json:"status"`
	Info   any    `json:"server_info"`
}

func runStatus(ctx context.Context, cfg *rootConfig, w io.Writer) error {
	s, err := connectFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	info, err := s.ServerInfo(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(statusInfo{
		Host:   cfg.host,
		Port:   cfg.port,
		Status: "ok",
		Info:   info,
	})
}

func connectFromConfig(ctx context.Context, cfg *rootConfig) (*rethinkgo.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()
	opts := []rethinkgo.Option{rethinkgo.Database(cfg.database)}
	if cfg.password != "" {
		opts = append(opts, rethinkgo.AuthPassword(cfg.password))
	}
	return rethinkgo.Connect(ctx, []string{cfg.endpoint()}, opts...)
}
