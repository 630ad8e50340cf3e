// stockctl runs the analytics engine over a CSV series from the command
// line, for ad-hoc analysis of exported sales data without a running server.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/stockpilot/stockpilot/internal/analytics"
)

func main() {
	app := &cli.App{
		Name:  "stockctl",
		Usage: "run stockpilot analytics over a CSV series",
		Commands: []*cli.Command{
			{
				Name:      "trend",
				Usage:     "predict the next value of a series",
				ArgsUsage: "<series.csv>",
				Action: func(c *cli.Context) error {
					series, err := readSeries(c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(analytics.PredictNextValue(series))
				},
			},
			{
				Name:      "forecast",
				Usage:     "forecast revenue several periods ahead",
				ArgsUsage: "<series.csv>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "periods",
						Value: analytics.DefaultForecastPeriods,
						Usage: "number of periods to forecast",
					},
				},
				Action: func(c *cli.Context) error {
					series, err := readSeries(c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(analytics.ForecastRevenue(series, c.Int("periods")))
				},
			},
			{
				Name:      "anomalies",
				Usage:     "flag series points outside the two-sigma band",
				ArgsUsage: "<series.csv>",
				Action: func(c *cli.Context) error {
					series, err := readSeries(c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(analytics.DetectAnomalies(series))
				},
			},
			{
				Name:      "reorder",
				Usage:     "compute safety stock and reorder point from a daily-demand series",
				ArgsUsage: "<demand.csv>",
				Action: func(c *cli.Context) error {
					series, err := readSeries(c.Args().First())
					if err != nil {
						return err
					}
					values := make([]float64, len(series))
					for i, p := range series {
						values[i] = p.Value
					}
					return printJSON(analytics.PlanReorder(values))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
