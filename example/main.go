package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/geckopush"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// start mock receiver (see mock_server.go)
	rcv, baseURL, err := StartMockReceiver("127.0.0.1:0", logger)
	if err != nil {
		logger.Error("failed to start mock receiver", "error", err)
		os.Exit(1)
	}

	// a widget that always fails, to show PushAll carrying on
	rcv.Fail("broken-widget", http.StatusNotFound, "Widget not found")

	d, err := geckopush.NewDashboard("demo-api-key",
		geckopush.WithBaseURL(baseURL),
		geckopush.WithMaxConcurrency(4),
		geckopush.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create dashboard", "error", err)
		os.Exit(1)
	}
	defer d.Close()

	if err := buildWidgets(d); err != nil {
		logger.Error("failed to build widgets", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := d.PushAll(ctx)

	fmt.Println()
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "FAIL"
		}
		fmt.Printf("  %-5s %-16s %-13s %s\n", status, r.WidgetKey, r.Kind, r.Latency)
	}
	fmt.Printf("\n  receiver accepted %d pushes\n\n", len(rcv.Pushes()))

	if err != nil {
		fmt.Printf("  failures:\n  %v\n\n", err)
	}
}

// buildWidgets registers one widget of every type with d.
func buildWidgets(d *geckopush.Dashboard) error {
	if _, err := geckopush.NewBarChart(d, "bar-chart",
		geckopush.WithBarSeries(120, 95, 143),
		geckopush.WithBarAxes(
			geckopush.WithXAxisLabels("Jan", "Feb", "Mar"),
			geckopush.WithYAxisFormat("currency"),
			geckopush.WithYAxisUnit("GBP"),
		),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewBulletGraph(d, "bullet-graph",
		geckopush.WithOrientation("horizontal"),
		geckopush.WithBullet(geckopush.Bullet{
			Label:          geckopush.String("Revenue 2024 YTD"),
			Sublabel:       "(GBP 000s)",
			Axis:           []float64{0, 200, 400, 600, 800},
			RedStart:       geckopush.Float(0),
			RedEnd:         geckopush.Float(400),
			AmberStart:     geckopush.Float(401),
			AmberEnd:       geckopush.Float(700),
			GreenStart:     geckopush.Float(701),
			GreenEnd:       geckopush.Float(800),
			CurrentStart:   geckopush.Float(0),
			CurrentEnd:     geckopush.Float(500),
			ProjectedStart: geckopush.Float(100),
			ProjectedEnd:   geckopush.Float(650),
			Comparative:    geckopush.Float(600),
		}),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewFunnel(d, "funnel",
		geckopush.WithFunnelStep(1000, "Visited"),
		geckopush.WithFunnelStep(420, "Signed up"),
		geckopush.WithFunnelStep(96, "Paid"),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewGeckoMeter(d, "geckometer",
		geckopush.WithMeterItem(73),
		geckopush.WithMeterRange(0, 100),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewHighCharts(d, "highcharts",
		geckopush.WithChart(`{chart:{type:'spline'},series:[{name:'Signups',data:[3,7,4,9]}]}`),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewLeaderboard(d, "leaderboard",
		geckopush.WithLeaderboardItem(geckopush.LeaderboardItem{Label: "Ada", Value: geckopush.Float(64), PreviousRank: geckopush.Int(2)}),
		geckopush.WithLeaderboardItem(geckopush.LeaderboardItem{Label: "Grace", Value: geckopush.Float(58), PreviousRank: geckopush.Int(1)}),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewLineChart(d, "line-chart",
		geckopush.WithLineSeries(geckopush.LineSeries{
			Name: "Signups",
			Points: []geckopush.Point{
				{X: "2024-06-01", Y: 12},
				{X: "2024-06-02", Y: 18},
				{X: "2024-06-03", Y: 15},
			},
			IncompleteFrom: "2024-06-03",
		}),
		geckopush.WithLineAxes(geckopush.WithXAxisType("datetime")),
	); err != nil {
		return err
	}

	if _, err := geckopush.NewList(d, "list",
		geckopush.WithListEntry(geckopush.ListEntry{Text: "Deploy finished", Name: "prod", Color: "#13ce66"}),
		geckopush.WithListEntry(geckopush.ListEntry{Text: "Disk at 81%", Name: "warn", Color: "#ff7a00", Description: "db-02"}),
	); err != nil {
		return err
	}

	_, err := geckopush.NewList(d, "broken-widget",
		geckopush.WithListEntry(geckopush.ListEntry{Text: "never arrives"}),
	)
	return err
}
