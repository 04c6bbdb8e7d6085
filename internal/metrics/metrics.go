// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// Wallet RPC metrics
	rpcCallsTotal   atomic.Int64
	rpcErrorsTotal  atomic.Int64
	rpcLatencyNanos atomic.Int64

	// Coin operation metrics
	combineOps atomic.Int64
	splitOps   atomic.Int64
	listOps    atomic.Int64
	opErrors   atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordRPCCall records a wallet RPC call with its duration and outcome.
func (m *Metrics) RecordRPCCall(duration time.Duration, err error) {
	m.rpcCallsTotal.Add(1)
	m.rpcLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.rpcErrorsTotal.Add(1)
	}
}

// RecordCombine records a combine operation.
func (m *Metrics) RecordCombine(err error) {
	m.combineOps.Add(1)
	if err != nil {
		m.opErrors.Add(1)
	}
}

// RecordSplit records a split operation.
func (m *Metrics) RecordSplit(err error) {
	m.splitOps.Add(1)
	if err != nil {
		m.opErrors.Add(1)
	}
}

// RecordList records a list operation.
func (m *Metrics) RecordList(err error) {
	m.listOps.Add(1)
	if err != nil {
		m.opErrors.Add(1)
	}
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	RPCCallsTotal   int64
	RPCErrorsTotal  int64
	RPCLatencyNanos int64
	CombineOps      int64
	SplitOps        int64
	ListOps         int64
	OpErrors        int64
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		RPCCallsTotal:   m.rpcCallsTotal.Load(),
		RPCErrorsTotal:  m.rpcErrorsTotal.Load(),
		RPCLatencyNanos: m.rpcLatencyNanos.Load(),
		CombineOps:      m.combineOps.Load(),
		SplitOps:        m.splitOps.Load(),
		ListOps:         m.listOps.Load(),
		OpErrors:        m.opErrors.Load(),
	}
}

// RPCLatencyAvgMs returns the average wallet RPC latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) RPCLatencyAvgMs() float64 {
	calls := m.rpcCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	nanos := m.rpcLatencyNanos.Load()
	return float64(nanos) / float64(calls) / 1e6
}
