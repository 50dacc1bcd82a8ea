// Package workers sizes the organize pipeline's worker pool.
//
// Counts are derived from GOMAXPROCS rather than runtime.NumCPU so
// container CPU quotas are respected (Go 1.19+ sets GOMAXPROCS from the
// cgroup limit while NumCPU reports the host). ORGANIZE_WORKERS
// overrides the derivation; the caller-supplied cap applies either way.
package workers
