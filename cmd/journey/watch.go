// Watch command reports external record changes on the file backend.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-journey/pkg/store"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the file backend for external record changes",
	Long: `Watch reports record keys rewritten by another process, the same
notification a host UI uses to refresh its cached records. Only the file
backend supports watching.

Example:
  journey watch`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if app.fileKV == nil {
		return fmt.Errorf("watch requires the file backend")
	}

	watcher, err := store.NewWatcher(app.fileKV, func(key string) {
		fmt.Printf("changed: %s\n", key)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("watching %s (ctrl-c to stop)\n", app.fileKV.Dir())
	<-ctx.Done()
	watcher.Stop()
	return nil
}
