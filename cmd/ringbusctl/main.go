// Command ringbusctl runs the ping-pong demo topology against a real
// Messenger, supplementing the library's tests with a runnable driver the
// distilled specification never shipped one of.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ringbus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "ringbusctl",
		Short: "Run the ringbus ping-pong demo topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ringbus.DefaultFileConfig()
			if configPath != "" {
				loaded, err := ringbus.LoadFileConfig(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				cfg = loaded
			}
			return runDemo(cfg, duration)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a ringbusctl yaml config")
	cmd.Flags().DurationVar(&duration, "duration", 500*time.Millisecond, "how long to let the demo run before stopping")
	return cmd
}

func runDemo(cfg ringbus.FileConfig, duration time.Duration) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	handlerAImpl := &handlerAState{}
	handlerBImpl := &handlerBState{}
	handlerCImpl := &handlerCState{}

	worker1 := ringbus.NewWorkerSpec("worker-1", handlerAImpl, handlerBImpl).
		Route(handlerA, messageB, reactBToA).
		Route(handlerB, messageA, reactAToB)

	worker2 := ringbus.NewWorkerSpec("worker-2", handlerCImpl).
		Route(handlerB, messageA, reactCLog)

	messenger, err := ringbus.NewMessenger(
		[]*ringbus.WorkerSpec{worker1, worker2},
		ringbus.WithCapacity(cfg.CapacityBytes),
		ringbus.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("constructing messenger: %w", err)
	}

	handles := messenger.Run()
	time.Sleep(duration)
	messenger.Stop()

	if err := handles.Join(); err != nil {
		return fmt.Errorf("joining workers: %w", err)
	}
	return messenger.Close()
}
