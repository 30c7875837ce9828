package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vkessler/tribunal/internal/watch"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the allowlist file and reload the cache on change",
	Long: "Runs until interrupted, resetting the engine's allowlist cache\n" +
		"whenever the backing file changes on disk.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	w, err := watch.New(eng, func(path string) {
		st := eng.Status()
		fmt.Fprintf(os.Stderr, "reloaded %s (%d entries)\n", path, st.AllowlistSize)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "watching %s\n", eng.AllowlistPath())
	return w.Run(ctx)
}
