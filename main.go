package main

import (
	"fmt"
	"os"

	"github.com/dlshle/cachesvc/logging"
	"github.com/dlshle/cachesvc/service"
)

// small demo wiring the cache service the way a business layer would
func main() {
	svc, err := service.New(service.Config{
		Namespaces: map[string]service.NamespaceConfig{
			"products":  {Capacity: 128, DefaultTTLSeconds: 300},
			"customers": {Capacity: 64},
			"reports":   {Capacity: 32, DefaultTTLSeconds: 60, SingleFlight: true},
		},
	})
	if err != nil {
		logging.GlobalLogger.Errorf("cache service failed to start: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	products, _ := svc.Namespace("products")
	products.Set("sku-1001", map[string]any{"name": "espresso beans", "price": 12.5})
	if value, found := products.Get("sku-1001"); found {
		fmt.Println("products cache hit:", value)
	}

	reportKey := service.MemoKey("reports.monthlySales", []any{2026, 8}, map[string]any{"region": "emea"})
	report, err := svc.GetOrCompute("reports", reportKey, func() (any, error) {
		// stands in for an expensive SQL aggregation
		return "monthly sales report 2026-08 emea", nil
	})
	if err != nil {
		logging.GlobalLogger.Errorf("report computation failed: %v", err)
	} else {
		fmt.Println("report:", report)
	}
	// second call is served from cache, the producer does not run again
	svc.GetOrCompute("reports", reportKey, func() (any, error) {
		return nil, fmt.Errorf("should not be invoked")
	})

	stats := svc.Stats()
	for name, snapshot := range stats.Namespaces {
		fmt.Printf("%s: size=%d hits=%d misses=%d hitRate=%.1f%%\n",
			name, snapshot.Size, snapshot.Hits, snapshot.Misses, snapshot.HitRatePercent())
	}
	fmt.Printf("total hit rate: %.1f%%\n", stats.Total.HitRatePercent())
}
