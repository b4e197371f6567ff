// Package optimizer drives the end-to-end optimize pipeline (C7):
// validate, build the distance/time matrices, apply traffic, resolve
// the depot, solve, annotate, aggregate statistics, and cache the
// result — the same staged, cache-fronted, metrics-instrumented request
// lifecycle the teacher's SolverService runs, retargeted from network
// flow onto vehicle routing.
package optimizer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"routeopt/internal/annotate"
	"routeopt/internal/apperror"
	"routeopt/internal/cache"
	"routeopt/internal/config"
	"routeopt/internal/depot"
	"routeopt/internal/distancematrix"
	"routeopt/internal/domain"
	"routeopt/internal/obslog"
	"routeopt/internal/obsmetrics"
	"routeopt/internal/obstrace"
	"routeopt/internal/stats"
	"routeopt/internal/vrp"
)

// stage names the state machine positions from spec.md §4.7: Init →
// Validated → MatrixBuilt → (TrafficApplied)? → DepotResolved → Solved
// → Annotated → Statted → Done. Any stage's failure short-circuits to
// Error.
type stage string

const (
	stageInit           stage = "init"
	stageValidated      stage = "validated"
	stageMatrixBuilt    stage = "matrix_built"
	stageTrafficApplied stage = "traffic_applied"
	stageDepotResolved  stage = "depot_resolved"
	stageSolved         stage = "solved"
	stageAnnotated      stage = "annotated"
	stageStatted        stage = "statted"
	stageDone           stage = "done"
)

// Engine holds everything Optimize needs across calls: its cache
// backend, the distance-matrix provider, configuration, and logger. It
// carries no per-request mutable state, so a single Engine serves
// concurrent Optimize calls safely.
type Engine struct {
	Config   *config.Config
	Cache    cache.Cache
	Provider distancematrix.Provider
	Log      *slog.Logger

	results *cache.ResultCache
}

// New builds an Engine. cache and provider may be nil: a nil cache
// disables both the matrix and result caches, and a nil provider forces
// every matrix build onto the Haversine fallback regardless of
// use_api.
func New(cfg *config.Config, c cache.Cache, provider distancematrix.Provider, log *slog.Logger) *Engine {
	if log == nil {
		log = obslog.New(obslog.Config{Level: "info", Output: "stdout", Format: "json"})
	}
	e := &Engine{Config: cfg, Cache: c, Provider: provider, Log: log}
	if c != nil {
		e.results = cache.NewResultCache(c, cfg.Cache.OptimizationResultCacheTTL)
	}
	return e
}

// Optimize runs the full pipeline described in spec.md §4.7 and always
// returns a non-nil Solution: any stage failure is converted into a
// Solution with status = error and a diagnostic in
// statistics.error, rather than a Go error, per spec.md §7's
// propagation rule.
func (e *Engine) Optimize(ctx context.Context, req *Request) *domain.Solution {
	requestID := uuid.NewString()
	log := obslog.WithRequestID(e.Log, requestID)
	metrics := obsmetrics.Get()
	start := time.Now()

	ctx, span := obstrace.StartSpan(ctx, "optimizer.optimize",
		attribute.String("routeopt.request_id", requestID),
		attribute.Int("routeopt.locations", len(req.Locations)),
		attribute.Int("routeopt.vehicles", len(req.Vehicles)),
		attribute.Int("routeopt.deliveries", len(req.Deliveries)),
	)
	defer span.End()

	sol := e.run(ctx, req, log, metrics)

	span.SetAttributes(
		attribute.String("routeopt.status", string(sol.Status)),
		attribute.Int("routeopt.unassigned_deliveries", len(sol.UnassignedDeliveryIDs)),
	)
	metrics.RecordSolve(string(sol.Status), time.Since(start))
	metrics.RouteTotalDistance.WithLabelValues(requestID).Set(sol.TotalDistance)
	metrics.UnassignedDeliveries.WithLabelValues(requestID).Set(float64(len(sol.UnassignedDeliveryIDs)))
	return sol
}

func (e *Engine) run(ctx context.Context, req *Request, log *slog.Logger, metrics *obsmetrics.Metrics) *domain.Solution {
	pipelineStart := time.Now()
	current := stageInit

	fail := func(at stage, err error) *domain.Solution {
		log.Error("optimize pipeline failed", "stage", string(at), "error", err)
		allUnassigned := make([]string, len(req.Deliveries))
		for i, d := range req.Deliveries {
			allUnassigned[i] = d.ID
		}
		return &domain.Solution{
			Status:                domain.StatusError,
			UnassignedDeliveryIDs: allUnassigned,
			Statistics: map[string]any{
				"error": err.Error(),
				"stage": string(at),
			},
		}
	}

	// 1. Validate inputs.
	if verr := validate(req); verr != nil {
		return fail(current, verr)
	}
	current = stageValidated

	metrics.RecordProblemSize("optimize", len(req.Locations), len(req.Vehicles), len(req.Deliveries))

	// 2. Compute cache key from normalized inputs; check the result cache.
	cacheKey := e.cacheKey(req)
	if e.results != nil {
		if cached, hit, err := e.results.Get(ctx, cacheKey); err == nil && hit {
			metrics.RecordCache("result", true)
			log.Info("optimize cache hit", "cache_key", cacheKey)
			return cached
		}
		metrics.RecordCache("result", false)
	}

	useAPI := e.Config.Matrix.UseAPIByDefault
	if req.UseAPI != nil {
		useAPI = *req.UseAPI
	}
	if e.Config.Solver.Testing {
		useAPI = false
	}

	// 3. Build matrix via C2.
	matrixCtx, matrixSpan := obstrace.StartSpan(ctx, "optimizer.stage.matrix_built")
	matrixTTL := time.Duration(e.Config.Cache.CacheExpiryDays) * 24 * time.Hour
	var result *distancematrix.Result
	if e.Cache != nil {
		built, err := distancematrix.CachedBuild(matrixCtx, e.Cache, matrixTTL, req.Locations, useAPI, e.Provider)
		if err != nil {
			obstrace.RecordError(matrixSpan, err)
			matrixSpan.End()
			return fail(current, apperror.Internal("building distance matrix", err))
		}
		result = built
	} else {
		result = distancematrix.Build(matrixCtx, req.Locations, useAPI, e.Provider)
	}
	matrixSpan.End()
	current = stageMatrixBuilt

	distanceMatrix := result.Distance
	timeMatrix := result.Time
	if req.ConsiderTimeWindows && timeMatrix == nil {
		timeMatrix = distanceMatrix
	}

	// 4. Apply traffic to the cost-driving matrix. RouteCost and the
	// router's value function are computed from the distance dimension
	// regardless of ConsiderTimeWindows (the time dimension only gates
	// window feasibility), so distance is always the matrix traffic
	// scales.
	if req.ConsiderTraffic && req.TrafficData != nil {
		factors := req.TrafficData.normalize()
		if len(factors) > 0 {
			distanceMatrix = distancematrix.ApplyTrafficFactors(distanceMatrix, factors)
		}
		current = stageTrafficApplied
	}

	// 5. Resolve depot.
	depotLoc, err := depot.Resolve(req.Locations, req.Vehicles)
	if err != nil {
		return fail(current, err)
	}
	depotIndex := distanceMatrix.IndexOf(depotLoc.ID)
	if depotIndex < 0 {
		return fail(current, apperror.Invalid("locations", "depot location is missing from the distance matrix"))
	}
	current = stageDepotResolved

	// 6. Solve, branching on consider_time_windows.
	solveCtx, solveSpan := obstrace.StartSpan(ctx, "optimizer.stage.solved")
	solverOpts := e.solverOptions(req)
	var sol *domain.Solution
	if req.ConsiderTimeWindows {
		sol = vrp.SolveWithTimeWindows(solveCtx, distanceMatrix, timeMatrix, req.Locations, req.Vehicles, req.Deliveries, depotIndex, solverOpts)
	} else {
		sol = vrp.Solve(solveCtx, distanceMatrix, req.Locations, req.Vehicles, req.Deliveries, depotIndex, solverOpts)
	}
	solveSpan.SetAttributes(attribute.String("routeopt.status", string(sol.Status)))
	solveSpan.End()
	if sol.Status == domain.StatusError {
		return fail(current, apperror.Internal("solver returned an error status", nil))
	}
	current = stageSolved

	// 7. Annotate via C5.
	_, annotateSpan := obstrace.StartSpan(ctx, "optimizer.stage.annotated")
	graph, err := distancematrix.ToGraph(distanceMatrix)
	if err != nil {
		obstrace.RecordError(annotateSpan, err)
		annotateSpan.End()
		return fail(current, err)
	}
	annotateLog := obslog.WithComponent(log, "annotate")
	sol = annotate.Annotate(sol, graph, timeMatrix, req.Vehicles, req.Deliveries, annotateLog)
	annotateSpan.End()
	current = stageAnnotated

	// 8. Aggregate stats via C6.
	_, statsSpan := obstrace.StartSpan(ctx, "optimizer.stage.statted")
	sol = stats.Aggregate(sol, req.Vehicles, time.Since(pipelineStart))
	statsSpan.End()
	current = stageStatted

	// 9. Cache and return.
	if e.results != nil {
		if err := e.results.Set(ctx, cacheKey, sol, e.Config.Cache.OptimizationResultCacheTTL); err != nil {
			log.Warn("failed to write result cache", "error", err)
		}
	}
	current = stageDone
	log.Debug("optimize pipeline complete", "stage", string(current))

	return sol
}

// cacheKey extends cache.ProblemHash with the flags that change the
// solve outcome for an otherwise identical (locations, vehicles,
// deliveries) tuple, per spec.md §4.7 stage 2's "sorted ... flags".
func (e *Engine) cacheKey(req *Request) string {
	problemHash := cache.ProblemHash(req.Locations, req.Vehicles, req.Deliveries)
	useAPI := e.Config.Matrix.UseAPIByDefault
	if req.UseAPI != nil {
		useAPI = *req.UseAPI
	}
	return cache.ShortHash([]byte(
		problemHash + ":" +
			boolFlag(req.ConsiderTraffic) + ":" +
			boolFlag(req.ConsiderTimeWindows) + ":" +
			boolFlag(useAPI),
	))
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (e *Engine) solverOptions(req *Request) *vrp.SolverOptions {
	opts := vrp.DefaultSolverOptions()
	if e.Config.Solver.TimeLimitSeconds > 0 {
		opts.TimeLimit = e.Config.Solver.TimeLimitSeconds
	}
	if req.TimeLimitSeconds > 0 {
		opts.TimeLimit = time.Duration(req.TimeLimitSeconds * float64(time.Second))
	}
	return opts
}
