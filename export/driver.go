package export

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/karpathyan/asd2vtk/types"
	"github.com/karpathyan/asd2vtk/utils"
	"go.uber.org/multierr"
)

// Report summarizes one Export run
type Report struct {
	Files    []string     // Output file per timestep, empty where the unit failed
	Failures []*UnitError // Ordered by timestep
	Workers  int
	Elapsed  time.Duration
}

// Written returns the files that were produced, in timestep order
func (r *Report) Written() (files []string) {
	for _, f := range r.Files {
		if f != "" {
			files = append(files, f)
		}
	}
	return
}

// Err combines the unit failures, nil when every timestep was written
func (r *Report) Err() (err error) {
	for _, ue := range r.Failures {
		err = multierr.Append(err, ue)
	}
	return
}

// Export writes one mesh per chunk. The timesteps are split into contiguous
// buckets, one goroutine per bucket. Units share only the read-only
// coordinates, and a failed unit does not stop the others.
func Export(coords types.CoordinateTable, chunks []types.VectorField,
	naming Naming, opts Options) (r *Report) {
	var (
		start = time.Now()
		T     = len(chunks)
		NP    = utils.ParallelDegree(opts.Workers, T)
		pm    = utils.NewPartitionMap(NP, T)
		errs  = make([]error, T)
		wg    = sync.WaitGroup{}
	)
	r = &Report{
		Files:   make([]string, T),
		Workers: NP,
	}
	if opts.Log != nil {
		opts.Log = &lockedWriter{w: opts.Log}
	}
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for step := kMin; step < kMax; step++ {
				fname := naming.FileName(step)
				errs[step] = runUnit(coords, chunks[step], fname, opts)
				if errs[step] == nil {
					r.Files[step] = fname
				}
			}
		}(np)
	}
	wg.Wait()

	for step, err := range errs {
		if err != nil {
			bn, _, _ := pm.GetBucket(step)
			r.Failures = append(r.Failures, &UnitError{
				Step:   step,
				Worker: bn,
				File:   naming.FileName(step),
				Err:    err,
			})
		}
	}
	r.Elapsed = time.Since(start)
	return
}

// runUnit converts a panic in one unit into that unit's error
func runUnit(coords types.CoordinateTable, field types.VectorField,
	fname string, opts Options) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	_, err = WriteMesh(coords, field, fname, opts)
	return
}

// Summary prints the outcome of r to w
func (r *Report) Summary(w io.Writer) {
	fmt.Fprintf(w, "%d of %d timesteps written by %d workers in %v\n",
		len(r.Written()), len(r.Files), r.Workers, r.Elapsed)
	for _, ue := range r.Failures {
		fmt.Fprintf(w, "failed: %v\n", ue)
	}
}
