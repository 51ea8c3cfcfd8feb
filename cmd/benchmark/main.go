package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/delaneyj/propa/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	widthsKey     = "widths"
	heightsKey    = "heights"
	iterationsKey = "iterations"
	profileKey    = "cpuprofile"
	warmupKey     = "warmup"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write-to-effect propagation through w chains of h computeds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  widthsKey,
				Usage: "Comma separated chain counts",
				Value: "1,10,100,1000",
			},
			&cli.StringFlag{
				Name:  heightsKey,
				Usage: "Comma separated chain lengths",
				Value: "1,10,100,1000",
			},
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Writes measured per graph",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
			&cli.BoolFlag{
				Name:  warmupKey,
				Usage: "Run every graph once before measuring",
				Value: true,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	ww, err := parseSizes(cmd.String(widthsKey))
	if err != nil {
		return fmt.Errorf("--%s: %w", widthsKey, err)
	}
	hh, err := parseSizes(cmd.String(heightsKey))
	if err != nil {
		return fmt.Errorf("--%s: %w", heightsKey, err)
	}
	iters := int(cmd.Uint(iterationsKey))
	if iters == 0 {
		return fmt.Errorf("--%s must be at least 1", iterationsKey)
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if cmd.Bool(warmupKey) {
		log.Printf("warming up")
		benchmarkPropagation(ww, hh, iters, false)
	}
	benchmarkPropagation(ww, hh, iters, true)
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("size %d must be at least 1", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

func addOne(v int) (int, error) {
	return v + 1, nil
}

func pass(int) error {
	return nil
}

func benchmarkPropagation(ww, hh []int, iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("propa signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "flushes"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			driver := reactive.NewManualDriver()
			rs := reactive.CreateReactiveSystem(
				reactive.WithDriver(driver),
				reactive.WithOnError(func(from reactive.NodeInfo, err error) {
					log.Panic(err)
				}),
			)
			src := reactive.Signal(rs, 1)
			for i := 0; i < w; i++ {
				var last reactive.Readable[int] = src
				for j := 0; j < h; j++ {
					last = reactive.Computed1(rs, last, addOne)
				}
				reactive.Effect1(rs, last, pass)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Peek() + 1)
				driver.Tick()
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					rs.Stats().Flushes,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
