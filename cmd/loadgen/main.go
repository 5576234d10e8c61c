// Command loadgen drives a single engine.Engine with a stream of
// randomly generated orders and reports matching throughput. It is a
// benchmarking and smoke-testing tool, not a trading strategy: the
// order stream exists only to put load on the engine.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/google/uuid"

	"cda/engine"
	"cda/internal/config"
	"cda/internal/logging"
)

func main() {
	totalOrders := flag.Int("orders", 500000, "number of orders to submit")
	priceWidth := flag.Int64("price-width", 20, "price spread around the reference price")
	maxDepth := flag.Int("max-depth", 2048, "maximum resting depth per half-book")
	cancelEvery := flag.Int("cancel-every", 0, "cancel a random resting order every N submissions")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for deterministic random streams")
	cpuProfile := flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile := flag.String("memprofile", "", "write heap profile to file")
	marketRatio := flag.Int("market-ratio", 5, "1 in N orders will be market instead of limit")
	flag.Parse()

	cfg := config.MustLoad()
	logger, err := logging.New(logging.Level(cfg.LogLevel))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *maxDepth > 0 {
		cfg.MaxBookDepth = *maxDepth
	}

	rng := rand.New(rand.NewSource(*seed))

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	tradable := engine.Tradable{Symbol: cfg.TradableSymbol, ID: uuid.New()}
	opts := []engine.EngineOption{}
	if cfg.MaxBookDepth > 0 {
		opts = append(opts, engine.WithMaxDepth(cfg.MaxBookDepth))
	}
	if cfg.InvariantChecks {
		opts = append(opts, engine.WithInvariantChecks())
	}
	e, err := engine.NewEngine(tradable, nil, nil, cfg.ReferencePrice, engine.DefaultPriceFormation{}, opts...)
	if err != nil {
		panic(err)
	}

	logger.Info("starting load generation",
		logging.F("orders", *totalOrders),
		logging.F("symbol", tradable.Symbol),
		logging.F("reference_price", cfg.ReferencePrice),
	)

	var matches int64
	resting := make([]engine.Order, 0, *totalOrders)

	start := time.Now()
	for i := 0; i < *totalOrders; i++ {
		order := nextRandomOrder(rng, tradable, cfg.ReferencePrice, *priceWidth, *marketRatio, int64(i))
		fills, err := e.FindMatch(order)
		if err != nil {
			logger.Warn("submit rejected", logging.F("error", err.Error()))
			continue
		}
		matches += int64(len(fills))
		resting = append(resting, order)

		if *cancelEvery > 0 && i > 0 && i%*cancelEvery == 0 && len(resting) > 0 {
			target := resting[rng.Intn(len(resting))]
			e.Cancel(target)
		}
	}
	elapsed := time.Since(start)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err == nil {
			defer f.Close()
			_ = pprof.WriteHeapProfile(f)
		}
	}

	ordersPerSec := float64(*totalOrders) / elapsed.Seconds()
	matchesPerSec := float64(matches) / elapsed.Seconds()

	fmt.Printf("submitted %d orders in %s (%.0f orders/s)\n", *totalOrders, elapsed.Truncate(time.Millisecond), ordersPerSec)
	fmt.Printf("matched %d fills (%.0f fills/s)\n", matches, matchesPerSec)
	fmt.Printf("top of book: %+v\n", e.Snapshot())
}

func nextRandomOrder(rng *rand.Rand, tradable engine.Tradable, referencePrice, width int64, marketRatio int, timestamp int64) engine.Order {
	id := uuid.New()
	qty := rng.Int63n(5) + 1
	isMarket := marketRatio > 0 && rng.Intn(marketRatio) == 0

	if rng.Intn(2) == 0 {
		if isMarket {
			return engine.NewMarketAsk(id, "loadgen", tradable, qty, timestamp)
		}
		price := referencePrice + rng.Int63n(width) - width/2
		if price < 1 {
			price = 1
		}
		return engine.NewLimitAsk(id, "loadgen", tradable, price, qty, timestamp)
	}

	if isMarket {
		return engine.NewMarketBid(id, "loadgen", tradable, qty, timestamp)
	}
	price := referencePrice + rng.Int63n(width) - width/2
	if price < 1 {
		price = 1
	}
	return engine.NewLimitBid(id, "loadgen", tradable, price, qty, timestamp)
}
