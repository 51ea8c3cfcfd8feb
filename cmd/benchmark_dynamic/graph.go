package main

import (
	"math"
	"math/rand"

	"github.com/delaneyj/propa/reactive"
)

type benchmarkGraph struct {
	rs      *reactive.ReactiveSystem
	sources []*reactive.WriteableSignal[int]
	layers  [][]*reactive.ReadonlySignal[int]
}

// makeGraph builds a source row of width signals followed by layers-1 rows
// of computeds, each summing nSources cells of the row above.
func makeGraph(cfg benchmarkTestConfig, counter *int64) *benchmarkGraph {
	rs := reactive.CreateReactiveSystem()
	g := &benchmarkGraph{
		rs:      rs,
		sources: make([]*reactive.WriteableSignal[int], cfg.Width),
	}
	prevRow := make([]reactive.Readable[int], cfg.Width)
	for i := range g.sources {
		g.sources[i] = reactive.Signal(rs, i)
		prevRow[i] = g.sources[i]
	}

	random := rand.New(rand.NewSource(0))
	for l := 0; l < cfg.TotalLayers-1; l++ {
		row := makeRow(rs, prevRow, cfg, counter, random)
		g.layers = append(g.layers, row)
		prevRow = make([]reactive.Readable[int], len(row))
		for i, c := range row {
			prevRow[i] = c
		}
	}
	return g
}

func makeRow(
	rs *reactive.ReactiveSystem,
	sources []reactive.Readable[int],
	cfg benchmarkTestConfig,
	counter *int64,
	random *rand.Rand,
) []*reactive.ReadonlySignal[int] {
	row := make([]*reactive.ReadonlySignal[int], len(sources))
	for myDex := range sources {
		mySources := make([]reactive.Readable[int], 0, cfg.NSources)
		for sourceDex := 0; sourceDex < cfg.NSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		staticNode := random.Float64() < cfg.StaticFraction || len(mySources) < 2
		if staticNode {
			row[myDex] = reactive.Computed(rs, func() (int, error) {
				*counter++
				sum := 0
				for _, source := range mySources {
					v, err := source.Read()
					if err != nil {
						return 0, err
					}
					sum += v
				}
				return sum, nil
			})
			continue
		}

		first, tail := mySources[0], mySources[1:]
		row[myDex] = reactive.Computed(rs, func() (int, error) {
			*counter++
			sum, err := first.Read()
			if err != nil {
				return 0, err
			}
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i, source := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				v, err := source.Read()
				if err != nil {
					return 0, err
				}
				sum += v
			}
			return sum, nil
		})
	}
	return row
}

// runGraph writes one source per iteration and reads a fixed subset of the
// leaves, returning the sum of those leaves at the end.
func runGraph(g *benchmarkGraph, iterations int64, readFraction float64) (int, error) {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < int(iterations); i++ {
		g.rs.Batch(func() {
			sourceDex := i % len(g.sources)
			g.sources[sourceDex].SetValue(i + sourceDex)
		})

		for _, leaf := range readLeaves {
			if _, err := leaf.Value(); err != nil {
				return 0, err
			}
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		v, err := leaf.Value()
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}
