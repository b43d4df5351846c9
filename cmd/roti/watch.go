package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"rotierp/internal/ws"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream live events (order.created, stock.low) until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			token, ok := a.store.AccessToken()
			if !ok {
				return errors.New("no access token available")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			endpoint := ws.URL(a.client.BaseURL())
			fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", endpoint)
			err := ws.Listen(ctx, endpoint, token, a.log, func(e ws.Event) {
				payload, _ := json.Marshal(e.Data)
				fmt.Printf("%s  %-16s %s\n", time.Now().Format("15:04:05"), e.Event, payload)
			})
			if ctx.Err() != nil {
				return nil // interrupted by the user
			}
			return err
		},
	}
}
