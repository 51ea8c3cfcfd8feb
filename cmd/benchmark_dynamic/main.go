package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	repeatsKey = "repeats"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_dynamic",
		Usage: "Run layered graph benchmarks with dynamic dependencies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML scenario file, the built-in suite when empty",
			},
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Override the number of measured runs per scenario",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting dynamic graph benchmark, please wait...")
	defer log.Print("Finished dynamic graph benchmark")

	cfg, err := loadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}
	testRepeats := cfg.Repeats
	if n := int(cmd.Uint(repeatsKey)); n > 0 {
		testRepeats = n
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "sum", "title",
	})

	for _, sc := range cfg.Scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("Running '%s' config", sc.Name)
		best, err := runScenario(sc, testRepeats)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", sc.Width, sc.TotalLayers),
			fmt.Sprint(sc.NSources),
			fmt.Sprint(sc.ReadFraction),
			fmt.Sprint(sc.StaticFraction),
			humanize.Comma(sc.Iterations),
			sc.Name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(updateRate)),
			humanize.Comma(int64(best.sum)),
			makeTitle(sc),
		})
	}
	table.Render()
	return nil
}

func runScenario(sc benchmarkTestConfig, repeats int) (*results, error) {
	counter := new(int64)
	graph := makeGraph(sc, counter)

	// warm up
	if _, err := runGraph(graph, sc.Iterations, sc.ReadFraction); err != nil {
		return nil, err
	}

	best := &results{duration: time.Hour}
	for i := 0; i < repeats; i++ {
		log.Printf("Running '%s' config, iteration %d/%d %d%%", sc.Name, i+1, repeats, (i+1)*100/repeats)
		*counter = 0
		start := time.Now()
		sum, err := runGraph(graph, sc.Iterations, sc.ReadFraction)
		if err != nil {
			return nil, err
		}
		duration := time.Since(start)
		if duration < best.duration {
			best.duration = duration
			best.sum = sum
			best.count = *counter
		}
	}
	return best, nil
}

func makeTitle(sc benchmarkTestConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", sc.Width, sc.TotalLayers, sc.NSources))
	if sc.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if sc.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*sc.ReadFraction))
	}
	return sb.String()
}
