package gallery

import (
	"sync"
	"sync/atomic"

	"drive-gallery/internal/logging"
	"drive-gallery/internal/metrics"
)

// pathJob carries one input path through the worker pool along with its
// position in the input sequence.
type pathJob struct {
	index int
	path  string
}

// processParallel runs the full per-path pipeline across a worker pool.
// Results land in a slice indexed by input position so the pre-sort order
// is exactly the input order regardless of worker scheduling; the stable
// timestamp sort then preserves that order for ties.
func (o *Organizer) processParallel(paths []string) []ImageRecord {
	if len(paths) == 0 {
		return nil
	}

	numWorkers := o.cfg.NumWorkers
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	jobs := make(chan pathJob, o.cfg.ChannelBuffer)
	results := make([]*ImageRecord, len(paths))

	var wg sync.WaitGroup
	var skipped atomic.Int64

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logging.Debug("organize worker %d started", id)
			for job := range jobs {
				rec, reason := processFull(job.path)
				if reason != "" {
					skipped.Add(1)
					metrics.OrganizeFilesSkipped.WithLabelValues("full", reason).Inc()
					continue
				}
				// Each worker writes a distinct index; no lock needed.
				results[job.index] = &rec
			}
			logging.Debug("organize worker %d finished", id)
		}(i)
	}

	for i, path := range paths {
		jobs <- pathJob{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	records := make([]ImageRecord, 0, len(paths))
	for _, rec := range results {
		if rec != nil {
			records = append(records, *rec)
		}
	}

	if n := skipped.Load(); n > 0 {
		logging.Debug("organize skipped %d of %d paths", n, len(paths))
	}
	return records
}
