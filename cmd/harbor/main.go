package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rafaelamscarneiro/SimplePTN/env"
	"github.com/rafaelamscarneiro/SimplePTN/harbor"
)

var (
	tickInterval time.Duration
	runFor       time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "harbor",
	Short: "harbor runs a concurrent harbor-terminal simulation on a Petri net",
	Long: `Ships race to dock at two berths, suppliers deliver freight on net
ticks while enabled, and ships depart once enough freight is loaded. All
actors run on separate goroutines against one shared net.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().DurationVar(&tickInterval, "tick", 0, "net tick interval (overrides HARBOR_TICK_INTERVAL)")
	rootCmd.Flags().DurationVar(&runFor, "for", 0, "how long to run (overrides HARBOR_RUN_FOR)")
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	e := env.LoadEnv(logger)
	if tickInterval == 0 {
		tickInterval = e.TickInterval
	}
	if runFor == 0 {
		runFor = e.RunFor
	}

	term, err := harbor.New(logger)
	if err != nil {
		return err
	}
	s1 := &harbor.StockSupplier{Stock: 28, PerTick: 2}
	s2 := &harbor.StockSupplier{Stock: 10, PerTick: 1}
	for _, s := range []*harbor.StockSupplier{s1, s2} {
		if err := term.AddSupplier(s); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}

	var wg sync.WaitGroup
	every := func(d time.Duration, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk := time.NewTicker(d)
			defer tk.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-tk.C:
					fn()
				}
			}
		}()
	}

	// Departure threads race for freight; arrivals and ticks pace the net.
	every(time.Millisecond, func() { term.TryDepartA() })
	every(time.Millisecond, func() { term.TryDepartB() })
	every(e.ArrivalEvery, func() {
		term.TryDockA()
		term.TryDockB()
	})
	every(tickInterval, term.Tick)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cycleSupplier(ctx, s1, 3500*time.Millisecond, 6500*time.Millisecond)
	}()
	go func() {
		defer wg.Done()
		cycleSupplier(ctx, s2, 2500*time.Millisecond, 5500*time.Millisecond)
	}()

	<-ctx.Done()
	wg.Wait()
	logger.Info("simulation finished")
	return nil
}

// cycleSupplier alternates the supplier between enabled and disabled.
func cycleSupplier(ctx context.Context, s *harbor.StockSupplier, on, off time.Duration) {
	for {
		s.Enable()
		select {
		case <-ctx.Done():
			return
		case <-time.After(on):
		}
		s.Disable()
		select {
		case <-ctx.Done():
			return
		case <-time.After(off):
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
