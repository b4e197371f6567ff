// Command engine wires the route optimization engine's components
// together and runs one demonstration Optimize call followed by a
// reroute call against its result, the way the wider logistics stack's
// cmd/<service>/main.go files wire a ServiceConfig and exercise it
// before handing off to a transport layer.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"routeopt/internal/cache"
	"routeopt/internal/config"
	"routeopt/internal/distancematrix"
	"routeopt/internal/domain"
	"routeopt/internal/obslog"
	"routeopt/internal/obsmetrics"
	"routeopt/internal/obstrace"
	"routeopt/internal/optimizer"
	"routeopt/internal/reroute"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := obslog.New(obslog.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	if cfg.Metrics.Enabled {
		m := obsmetrics.Init(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	}

	shutdownTracing, err := obstrace.Init(context.Background(), cfg.Tracing, cfg.App.Name, cfg.App.Version)
	if err != nil {
		log.Warn("failed to initialize tracing, continuing without export", "error", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				log.Warn("failed to shut down tracing", "error", err)
			}
		}()
	}

	c, err := cache.New(cache.FromConfig(&cfg.Cache))
	if err != nil {
		log.Error("failed to initialize cache, continuing without one", "error", err)
		c = nil
	}

	var provider distancematrix.Provider
	if cfg.Matrix.UseAPIByDefault && cfg.Matrix.GoogleMapsAPIKey != "" && !cfg.Solver.Testing {
		provider = distancematrix.NewHTTPProvider(
			"https://maps.googleapis.com/maps/api/distancematrix",
			cfg.Matrix.GoogleMapsAPIKey,
			cfg.Retry.MaxRetries,
			cfg.Retry.RetryDelaySeconds,
		)
	}

	engine := optimizer.New(cfg, c, provider, log)
	rerouter := reroute.New(engine)

	req := demoRequest()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sol := engine.Optimize(ctx, req)

	out, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		log.Error("failed to marshal solution", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	// Demonstrate a live reroute against the first solution: stop-1 is
	// marked delivered and traffic triples on the depot->stop-2 leg.
	rerouted := rerouter.RerouteForTraffic(ctx, reroute.Input{
		CurrentSolution:      sol,
		Locations:            req.Locations,
		Vehicles:             req.Vehicles,
		OriginalDeliveries:   req.Deliveries,
		CompletedDeliveryIDs: []string{"d-1"},
		ConsiderTimeWindows:  req.ConsiderTimeWindows,
	}, &optimizer.TrafficData{
		LocationPairs: []optimizer.TrafficPair{
			{From: "depot", To: "stop-2", Factor: 3.0},
		},
	})

	reroutedOut, err := json.MarshalIndent(rerouted, "", "  ")
	if err != nil {
		log.Error("failed to marshal rerouted solution", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(reroutedOut))
}

// demoRequest builds a small, self-contained optimize request so the
// binary produces output with no external inputs: one depot, three
// delivery stops, and two vehicles.
func demoRequest() *optimizer.Request {
	depot := domain.Location{ID: "depot", Latitude: 40.7128, Longitude: -74.0060, IsDepot: true}
	locs := []domain.Location{
		depot,
		{ID: "stop-1", Latitude: 40.7306, Longitude: -73.9352},
		{ID: "stop-2", Latitude: 40.6782, Longitude: -73.9442},
		{ID: "stop-3", Latitude: 40.7484, Longitude: -73.9857},
	}

	vehicles := []domain.Vehicle{
		{ID: "van-1", Capacity: 50, StartLocationID: "depot", EndLocationID: "depot", CostPerDistanceUnit: 1.2, Available: true},
		{ID: "van-2", Capacity: 50, StartLocationID: "depot", EndLocationID: "depot", CostPerDistanceUnit: 1.2, Available: true},
	}

	deliveries := []domain.Delivery{
		{ID: "d-1", LocationID: "stop-1", Demand: 10, Priority: 1},
		{ID: "d-2", LocationID: "stop-2", Demand: 15, Priority: 2},
		{ID: "d-3", LocationID: "stop-3", Demand: 5, Priority: 1},
	}

	return &optimizer.Request{
		Locations:  locs,
		Vehicles:   vehicles,
		Deliveries: deliveries,
	}
}
