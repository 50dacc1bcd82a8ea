package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count derives a worker count from the CPUs the scheduler will actually
// use. GOMAXPROCS tracks container CPU quotas (Go 1.19+) where
// runtime.NumCPU still reports the host, so pools sized here stay inside
// cgroup limits without extra plumbing.
//
// multiplier scales per-CPU parallelism and limit caps the result
// (0 means uncapped). The ORGANIZE_WORKERS environment variable
// overrides the derivation, still subject to the cap.
func Count(multiplier float64, limit int) int {
	if n, ok := overrideFromEnv(); ok {
		return capped(n, limit)
	}

	n := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if n < 1 {
		n = 1
	}
	return capped(n, limit)
}

// ForIO sizes a pool for I/O-dominated work. The organize pipeline
// spends most of its time in stat calls, image header reads and EXIF
// probes, so two workers per CPU keep the CPUs busy while half the pool
// waits on disk.
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// overrideFromEnv reads the operator override. Non-numeric and
// non-positive values are ignored rather than clamped; a broken override
// should not silently serialize the pipeline.
func overrideFromEnv() (int, bool) {
	v := os.Getenv("ORGANIZE_WORKERS")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func capped(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
