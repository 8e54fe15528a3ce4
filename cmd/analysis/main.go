// Command analysis measures the accuracy of hermosa filters empirically.
//
// Each trial fills a filter, checks that no recorded element is
// under-counted, and probes it with elements that were never recorded to
// measure the false positive rate.
package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configFile := flag.String("config", "", "Filename of config")
	printDefaultConfig := flag.Bool("config-print-default", false, "Print default config")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *printDefaultConfig {
		if err := PrintConfig(os.Stdout, NewConfig()); err != nil {
			log.Fatal(err)
		}
		return
	}

	level, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := NewConfig()
	if err := ParseConfig(*configFile, cfg); err != nil {
		logger.Fatal("failed to load config", zap.String("file", *configFile), zap.Error(err))
	}

	failed := false
	for i, t := range cfg.Trials {
		var r *rand.Rand
		if cfg.Seed != 0 {
			r = rand.New(rand.NewPCG(cfg.Seed, uint64(i)))
		}

		logger.Debug("running trial", zap.String("trial", t.Name))
		res, err := Run(t, r)
		if err != nil {
			logger.Error("trial failed", zap.String("trial", t.Name), zap.Error(err))
			failed = true
			continue
		}

		fields := []zap.Field{
			zap.String("trial", t.Name),
			zap.Uint64("expected_items", t.ExpectedItems),
			zap.Float64("target_fp_rate", t.FPRate),
			zap.Uint64("inserted", t.Inserted),
			zap.Int("repeat", t.Repeat),
			zap.Uint64("cells", res.Cells),
			zap.Uint32("k", res.K),
			zap.Float64("observed_fp_rate", res.ObservedFPRate),
			zap.Float64("expected_fp_rate", res.ExpectedFPRate),
			zap.Float64("fill_ratio", res.FillRatio),
			zap.Uint64("saturated_cells", res.Saturated),
			zap.Float64("mean_overcount", res.MeanOvercount),
			zap.Duration("elapsed", res.Elapsed),
		}
		if res.Undercounts > 0 {
			logger.Error("recorded elements under-counted", append(fields, zap.Uint64("undercounts", res.Undercounts))...)
			failed = true
			continue
		}
		logger.Info("trial complete", fields...)
	}

	if failed {
		logger.Sync()
		os.Exit(1)
	}
}
