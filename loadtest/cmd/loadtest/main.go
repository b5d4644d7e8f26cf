// Package main は 負荷試験ツールのエントリーポイントを提供します。
package main

import (
	"fmt"
	"os"

	"github.com/amakane-hakari/scorecache/loadtest/attacker"
	"github.com/amakane-hakari/scorecache/loadtest/config"
	"github.com/amakane-hakari/scorecache/loadtest/scenario"
)

func main() {
	cfg := config.Load()

	fmt.Printf("[INFO] base-url=%s rate=%d duration=%s read-ratio=%.2f keys=%d value-size=%d max-cost=%.2f hot-ratio=%.2f read-only=%v\n",
		cfg.BaseURL, cfg.Rate, cfg.Duration, cfg.ReadRatio, cfg.Keys, cfg.ValueSize, cfg.MaxCost, cfg.HotRatio, cfg.DisablePUT)

	gen := scenario.NewGenerator(
		cfg.BaseURL,
		cfg.Keys,
		cfg.ReadRatio,
		cfg.ValueSize,
		cfg.MaxCost,
		cfg.HotRatio,
		cfg.DisablePUT,
	)

	r := attacker.Runner{
		Rate:     cfg.Rate,
		Duration: cfg.Duration,
		Timeout:  cfg.Timeout,
		Name:     cfg.Name,
		Output:   cfg.Output,
	}

	if _, err := r.Run(gen.Targeter()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
