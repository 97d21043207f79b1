package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tokenized/config"

	"github.com/tokenized/vtl/chain"
	"github.com/tokenized/vtl/logger"
	"github.com/tokenized/vtl/monitor"
	"github.com/tokenized/vtl/protocol"
	"github.com/tokenized/vtl/quantile"
	"github.com/tokenized/vtl/resolver"
	"github.com/tokenized/vtl/store"
	"github.com/tokenized/vtl/threads"
)

// quantileFeeApproximationFactor and quantileMaxFeeSatoshis parameterize the fee history
// approximator; they bound the Quantile Engine's memory use independently of how large a fee the
// network ever actually charges.
const (
	quantileFeeApproximationFactor = 2
	quantileMaxFeeSatoshis         = 1 << 32
	quantileGroupLimit             = 144 // roughly one day of groups at the default 600 second poll period
	quantileTargetFee              = 0.5 // median observed fee
)

var (
	buildVersion = "unknown"
	buildDate    = "unknown"
)

// Config is the top-level configuration for the vtlmonitor binary, loaded through
// github.com/tokenized/config.
type Config struct {
	Monitor    monitor.Config      `json:"monitor"`
	Parameters protocol.Parameters `json:"parameters"`
}

func main() {
	logConfig := logger.NewDevelopmentConfig()
	ctx := logger.ContextWithLogConfig(context.Background(), logConfig)
	ctx = logger.ContextWithLogSubSystem(ctx, "vtlmonitor")

	cfg := &Config{
		Monitor:    monitor.Config{TransactionFeesAmountSatoshis: 100, PollPeriodSeconds: 600},
		Parameters: protocol.NewParameters(),
	}
	if err := config.LoadConfig(ctx, cfg); err != nil {
		logger.Fatal(ctx, "Loading config : %s", err)
	}

	maskedConfig, err := config.MarshalJSONMaskedRaw(cfg)
	if err != nil {
		logger.Fatal(ctx, "Marshalling config : %s", err)
	}
	logger.InfoWithFields(ctx, nil, "Build %v (%v)", buildVersion, buildDate)
	logger.InfoWithFields(ctx, []logger.Field{logger.String("config", string(maskedConfig))}, "Config")

	// A deployment wires a real Chain Client here; this wiring example uses the in-memory
	// mock so the binary runs standalone for demonstration.
	client := chain.NewMockClient(0, 0)
	lockStore := store.NewMemoryLockStore()

	approximator := quantile.NewValueApproximator(quantileFeeApproximationFactor, quantileMaxFeeSatoshis)
	window := quantile.NewSlidingWindow(approximator, quantileGroupLimit)
	feeCalculator := protocol.NewQuantileFeeCalculator(window, quantileTargetFee)

	r := resolver.New(client, cfg.Parameters, feeCalculator)

	m, err := monitor.New(client, lockStore, r, cfg.Parameters, cfg.Monitor, feeCalculator)
	if err != nil {
		logger.Fatal(ctx, "Creating monitor : %s", err)
	}

	if err := m.Initialize(ctx); err != nil {
		logger.Fatal(ctx, "Initializing monitor : %s", err)
	}

	m.Start(ctx)

	rotationThread := threads.NewPeriodicTask("quantile_fee_rotation", cfg.Monitor.PollPeriod(),
		feeCalculator.Rotate)
	rotationThread.Start(ctx)

	logger.Info(ctx, "Monitor running")

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)

	sig := <-osSignals
	logger.Info(ctx, "Received signal : %s", sig)

	// Monitor and the fee-window rotation loop are two independently started goroutines; combine
	// their shutdown so neither is forgotten as more background tasks are added.
	var shutdown threads.StopCombiner
	shutdown.Add(m)
	shutdown.Add(rotationThread)

	logger.Info(ctx, "Stopping monitor")
	shutdown.Stop(ctx)
	logger.Info(ctx, "Stopped")
}
