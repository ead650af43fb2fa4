// Package benchmark - Metrics captured per scenario run.
package benchmark

import (
	"runtime"
	"time"

	"github.com/mlinfra-lab/gpubench/harness"
	"github.com/mlinfra-lab/gpubench/inference"
)

// ScenarioMetrics captures everything recorded for one completed scenario.
type ScenarioMetrics struct {
	Scenario  Scenario              `json:"scenario"`
	Timestamp time.Time             `json:"timestamp"`
	Run       *harness.Result       `json:"run"`
	Runtime   inference.RuntimeInfo `json:"runtime"`
	// TotalImages is invocation count times batch size.
	TotalImages int `json:"total_images"`
	// ImagesPerSecond is the invocation throughput scaled by batch size,
	// the number the original benchmark reported as samples/sec.
	ImagesPerSecond float64       `json:"images_per_second"`
	Memory          MemoryMetrics `json:"memory_stats"`
}

// MemoryMetrics captures Go heap statistics across a scenario run.
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
	HeapAllocBytes  uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes    uint64 `json:"heap_sys_bytes"`
}

// memoryDelta derives MemoryMetrics from before/after runtime snapshots.
func memoryDelta(start, end runtime.MemStats) MemoryMetrics {
	return MemoryMetrics{
		AllocBytes:      end.Alloc,
		TotalAllocBytes: end.TotalAlloc - start.TotalAlloc,
		SysBytes:        end.Sys,
		NumGC:           end.NumGC - start.NumGC,
		HeapAllocBytes:  end.HeapAlloc,
		HeapSysBytes:    end.HeapSys,
	}
}
