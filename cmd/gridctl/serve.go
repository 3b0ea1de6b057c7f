package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlgrid/internal/server"
)

func newServeCommand(root *rootParams, logger *logrus.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo user admin backed by an in-memory store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := root.services(logger)
			if err != nil {
				return err
			}
			srv := server.New(services, server.NewStore(server.SeedUsers()...))
			return srv.Start(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
