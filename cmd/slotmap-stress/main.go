package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/slotmap/slotmap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	itemCount := flag.Int("items", 10000, "The live set size the churn loop maintains.")
	opsPerEpoch := flag.Int("ops", 10000, "Operations per epoch (invariants are verified between epochs).")
	seed := flag.Int64("seed", 1, "Random seed for the churn sequence.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting slot map stress test...")

	rng := rand.New(rand.NewSource(*seed))
	m := slotmap.New[int64]()

	// Shadow model: every live key and its expected value. Keys double
	// as Go map keys here, which is itself part of the contract.
	model := make(map[slotmap.Key]int64, *itemCount)
	liveKeys := make([]slotmap.Key, 0, *itemCount)
	deadKeys := make([]slotmap.Key, 0, *itemCount)
	var nextValue int64

	log.Printf("Populating map with %d items...\n", *itemCount)
	for i := 0; i < *itemCount; i++ {
		key := m.Insert(nextValue)
		model[key] = nextValue
		liveKeys = append(liveKeys, key)
		nextValue++
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Items:          *itemCount,
		OpsPerEpoch:    *opsPerEpoch,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		EpochTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running churn for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalOps, totalEpochs int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			epochStart := time.Now()

			for op := 0; op < *opsPerEpoch; op++ {
				switch {
				case len(liveKeys) < *itemCount && (len(liveKeys) == 0 || rng.Intn(2) == 0):
					key := m.Insert(nextValue)
					model[key] = nextValue
					liveKeys = append(liveKeys, key)
					nextValue++

				case rng.Intn(4) == 0:
					// Erase a random live key; a second erase must fail.
					i := rng.Intn(len(liveKeys))
					key := liveKeys[i]
					if !m.Erase(key) {
						log.Fatalf("erase of live key %+v failed", key)
					}
					if m.Erase(key) {
						log.Fatalf("double erase of key %+v succeeded", key)
					}
					delete(model, key)
					liveKeys[i] = liveKeys[len(liveKeys)-1]
					liveKeys = liveKeys[:len(liveKeys)-1]
					if len(deadKeys) < cap(deadKeys) {
						deadKeys = append(deadKeys, key)
					}

				default:
					i := rng.Intn(len(liveKeys))
					key := liveKeys[i]
					v, ok := m.TryGet(key)
					if !ok {
						log.Fatalf("live key %+v did not resolve", key)
					}
					if v != model[key] {
						log.Fatalf("key %+v resolved to %d, want %d", key, v, model[key])
					}
				}
				totalOps++
			}

			verifyEpoch(m, model, deadKeys)

			report.EpochTime.Samples = append(report.EpochTime.Samples, time.Since(epochStart))
			totalEpochs++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalOps = totalOps
	report.TotalEpochs = totalEpochs
	report.FinalStats = m.CollectStats()
	report.EpochTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Churn finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// verifyEpoch checks the full invariant set between epochs: the map and
// the shadow model agree element for element, dead keys stay dead, the
// dense store is gap-free, and the free list accounts for every
// non-live slot exactly once.
func verifyEpoch(m *slotmap.SlotMap[int64], model map[slotmap.Key]int64, deadKeys []slotmap.Key) {
	if m.Size() != len(model) {
		log.Fatalf("size %d, model holds %d", m.Size(), len(model))
	}

	seen := 0
	for key, v := range m.All() {
		want, ok := model[key]
		if !ok {
			log.Fatalf("map yielded unknown key %+v", key)
		}
		if *v != want {
			log.Fatalf("key %+v holds %d, want %d", key, *v, want)
		}
		seen++
	}
	if seen != len(model) {
		log.Fatalf("iteration yielded %d values, want %d", seen, len(model))
	}

	for i := 0; i < m.Size(); i++ {
		key := m.KeyForIndex(i)
		if v := *m.At(i); v != model[key] {
			log.Fatalf("dense position %d holds %d, owner key %+v expects %d", i, v, key, model[key])
		}
	}

	for _, key := range deadKeys {
		if _, ok := m.TryGet(key); ok {
			log.Fatalf("dead key %+v resolved", key)
		}
	}

	stats := m.CollectStats()
	if stats.Size+stats.FreeSlots != stats.Capacity {
		log.Fatalf("slot accounting: size %d + free %d != capacity %d", stats.Size, stats.FreeSlots, stats.Capacity)
	}
	if len(stats.FreeList) != stats.FreeSlots {
		log.Fatalf("free list visits %d slots, want %d", len(stats.FreeList), stats.FreeSlots)
	}
	unique := make(map[int32]bool, len(stats.FreeList))
	for _, id := range stats.FreeList {
		if unique[id] {
			log.Fatalf("free list visits slot %d twice", id)
		}
		unique[id] = true
	}
}
