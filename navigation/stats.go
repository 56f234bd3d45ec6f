package navigation

import (
	"fmt"
	"sync/atomic"
	"time"
)

// searchStats aggregates query counters lock-free. Hot paths write
// atomics directly; Statistics() takes a consistent-enough snapshot
// for reporting, which is all it is for
type searchStats struct {
	totalQueries   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	failedQueries  atomic.Int64
	nodesExplored  atomic.Int64
	computeTimeNs  atomic.Int64
	coalescedCalls atomic.Int64
}

func (s *searchStats) recordHit() {
	s.totalQueries.Add(1)
	s.cacheHits.Add(1)
}

func (s *searchStats) recordMiss(r Result) {
	s.totalQueries.Add(1)
	s.cacheMisses.Add(1)
	s.nodesExplored.Add(int64(r.NodesExplored))
	s.computeTimeNs.Add(int64(r.ComputeTime))
	if !r.Success {
		s.failedQueries.Add(1)
	}
}

// recordCoalesced counts a caller whose query was served by another
// in-flight computation. The nodes and compute time belong to the one
// caller that ran the search; counting them again here would inflate
// both
func (s *searchStats) recordCoalesced(r Result) {
	s.totalQueries.Add(1)
	s.coalescedCalls.Add(1)
	if !r.Success {
		s.failedQueries.Add(1)
	}
}

func (s *searchStats) reset() {
	s.totalQueries.Store(0)
	s.cacheHits.Store(0)
	s.cacheMisses.Store(0)
	s.failedQueries.Store(0)
	s.nodesExplored.Store(0)
	s.computeTimeNs.Store(0)
	s.coalescedCalls.Store(0)
}

// Statistics is a read-only snapshot of manager counters
type Statistics struct {
	TotalQueries   int64
	CacheHits      int64
	CacheMisses    int64
	FailedQueries  int64
	NodesExplored  int64
	CoalescedCalls int64

	// TotalComputeTime covers cache misses only; hits cost lookups
	TotalComputeTime   time.Duration
	AverageComputeTime time.Duration
}

// HitRate is cache hits over total queries, 0 when idle
func (st Statistics) HitRate() float64 {
	if st.TotalQueries == 0 {
		return 0
	}
	return float64(st.CacheHits) / float64(st.TotalQueries)
}

func (st Statistics) String() string {
	return fmt.Sprintf(
		"queries=%d hits=%d misses=%d failed=%d hitRate=%.2f nodes=%d avgCompute=%s",
		st.TotalQueries, st.CacheHits, st.CacheMisses, st.FailedQueries,
		st.HitRate(), st.NodesExplored, st.AverageComputeTime,
	)
}

func (s *searchStats) snapshot() Statistics {
	st := Statistics{
		TotalQueries:   s.totalQueries.Load(),
		CacheHits:      s.cacheHits.Load(),
		CacheMisses:    s.cacheMisses.Load(),
		FailedQueries:  s.failedQueries.Load(),
		NodesExplored:  s.nodesExplored.Load(),
		CoalescedCalls: s.coalescedCalls.Load(),
	}
	st.TotalComputeTime = time.Duration(s.computeTimeNs.Load())
	if st.CacheMisses > 0 {
		st.AverageComputeTime = st.TotalComputeTime / time.Duration(st.CacheMisses)
	}
	return st
}
