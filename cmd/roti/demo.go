package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rotierp/internal/demo"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		port   string
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the embedded demo backend as a standalone server",
		Long: "Run the seeded demo backend in the foreground so other clients can\n" +
			"connect to it. Accounts: super/admin/manager/franchise/operator@roti.local,\n" +
			"password " + demo.DemoPassword + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.DemoPort
			}
			if dbPath == "" {
				dbPath = a.cfg.DemoDBPath
			}
			server, err := demo.New(demo.Options{
				DSN:    dbPath,
				Secret: a.cfg.JWTSecret,
				Logger: a.log,
				Seed:   true,
			})
			if err != nil {
				return err
			}
			origin, stop, err := server.Listen("127.0.0.1:" + port)
			if err != nil {
				return err
			}
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "demo backend listening at %s\n", origin)

			done := make(chan os.Signal, 1)
			signal.Notify(done, os.Interrupt, syscall.SIGTERM)
			<-done
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default ROTI_DEMO_PORT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite DSN for the demo database (default ROTI_DEMO_DB)")
	return cmd
}
