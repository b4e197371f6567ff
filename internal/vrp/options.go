// Package vrp solves the Capacitated Vehicle Routing Problem (CVRP) and
// its time-windowed variant (VRPTW): assigning deliveries to vehicles
// and ordering each vehicle's stops to minimize total distance subject
// to capacity, distance, and time-window constraints.
//
// The search itself is delegated to github.com/nextmv-io/sdk/route, the
// constraint-programming router also demonstrated end-to-end by the
// nextmv Parcel Routing template in this codebase's reference corpus:
// this package's job is building that router's input (stops, vehicles,
// capacities, windows, disjunction penalties, custom constraints) from
// a Problem and translating its solved store.Store back into a
// domain.Solution.
package vrp

import "time"

// SolverOptions configures a Solve/SolveWithTimeWindows call.
//
// A nil *SolverOptions passed to Solve/SolveWithTimeWindows is replaced
// by DefaultSolverOptions(); a non-nil value is used as given, zero
// fields included.
// Options can be chained using the builder pattern:
//
//	opts := DefaultSolverOptions().WithTimeLimit(5 * time.Second)
type SolverOptions struct {
	// TimeLimit bounds the store search. Passed straight through as
	// store.Options.Limits.Duration; zero means unbounded, the same
	// "0 is infinity" convention the nextmv template documents.
	TimeLimit time.Duration

	// ExpansionLimit bounds how many alternatives the router's diagram
	// search expands per step. The nextmv template pins this to 1 for
	// a fast, close-to-greedy construction; we expose it so a caller
	// solving a small, latency-sensitive reroute can keep that default
	// while a larger batch optimize can raise it for a deeper search.
	ExpansionLimit int

	// CapacityScalingFactor scales demand to the solver's integer
	// capacity unit. Default 1.
	CapacityScalingFactor int

	// MaxRouteDistanceUnscaled is the global fallback distance bound
	// (km) used when a vehicle does not specify MaxDistance. Enforced
	// by a distanceBoundConstraint rather than left to the router's
	// own cost minimization, since a bound is a hard constraint, not a
	// cost to minimize.
	MaxRouteDistanceUnscaled float64

	// MaxRouteDurationUnscaled is the global time-dimension bound
	// (minutes) for VRPTW, enforced the same way as
	// MaxRouteDistanceUnscaled but against the time matrix.
	MaxRouteDurationUnscaled float64

	// UnassignedPenaltyBase and UnassignedPenaltyPerPriority compute
	// each stop's disjunction penalty as
	// base + priority*perPriority, per spec.md §4.3's "penalty
	// proportional to priority" - a strictly positive base keeps a
	// zero-priority delivery from being free to drop.
	UnassignedPenaltyBase        int
	UnassignedPenaltyPerPriority int
}

// DefaultSolverOptions returns the spec's default scaling factor and a
// 10 second solve budget.
func DefaultSolverOptions() *SolverOptions {
	return &SolverOptions{
		TimeLimit:                    10 * time.Second,
		ExpansionLimit:               1,
		CapacityScalingFactor:        1,
		MaxRouteDistanceUnscaled:     1000.0,
		MaxRouteDurationUnscaled:     720.0,
		UnassignedPenaltyBase:        1000,
		UnassignedPenaltyPerPriority: 1000,
	}
}

// WithTimeLimit sets the solve time budget and returns o for chaining.
func (o *SolverOptions) WithTimeLimit(d time.Duration) *SolverOptions {
	o.TimeLimit = d
	return o
}

// WithScalingFactors overrides the capacity-scaling factor. distance
// and timeArg are accepted for call-site compatibility with callers
// that still reason in the solver's former distance/time scaling
// terms, but the router works directly in the matrices' native units,
// so only capacity scaling has an effect here.
func (o *SolverOptions) WithScalingFactors(distance, timeArg, capacity int) *SolverOptions {
	o.CapacityScalingFactor = capacity
	return o
}

// WithExpansionLimit overrides the router's diagram expansion limit
// and returns o for chaining.
func (o *SolverOptions) WithExpansionLimit(limit int) *SolverOptions {
	o.ExpansionLimit = limit
	return o
}

func (o *SolverOptions) scaleDemand(demand int) int {
	return demand * o.CapacityScalingFactor
}

// unassignedPenalty computes a stop's disjunction penalty from its
// delivery priority, per spec.md §4.3.
func (o *SolverOptions) unassignedPenalty(priority int) int {
	return o.UnassignedPenaltyBase + priority*o.UnassignedPenaltyPerPriority
}
