package maths

import (
	"runtime"
	"sync"
)

var (
	parallelismOnce sync.Once
	parallelism     int

	poolOnce sync.Once
	pool     *rowWorkerPool
)

// InitGlobalParallelism sets how many goroutines the sparse LU's row-update
// loop is allowed to use. It is idempotent and guarded by a once-flag, per
// spec's "never implicit" design note: later calls are no-ops. n<=0 means
// "use GOMAXPROCS", matching the threads=0 policy of "use all available
// cores inside the LU factorization". Callers running independent solves
// in their own externally-parallelized batch should call
// InitGlobalParallelism(1) once at startup instead, so LU itself stays
// single-threaded and the two parallelism strategies are not mixed.
func InitGlobalParallelism(n int) {
	parallelismOnce.Do(func() {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		parallelism = n
	})
}

func currentParallelism() int {
	if parallelism == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return parallelism
}

// rowWorkerPool is a fixed set of long-lived goroutines that apply a
// caller-supplied row update over a range of indices. Decompose calls
// parallelRowUpdate once per elimination step, and Solve calls Decompose
// once per Newton iteration, so a pool spun up fresh on every call would
// pay a semaphore and a goroutine-per-row allocation on every single step
// of every iteration; this pool is built once, lazily, and every later
// call just hands its rows to the already-running workers.
type rowWorkerPool struct {
	jobs chan rowJob
	wg   sync.WaitGroup
}

type rowJob struct {
	i int
	f func(int)
}

func newRowWorkerPool(workers int) *rowWorkerPool {
	p := &rowWorkerPool{jobs: make(chan rowJob, workers)}
	for w := 0; w < workers; w++ {
		go p.loop()
	}
	return p
}

func (p *rowWorkerPool) loop() {
	for job := range p.jobs {
		job.f(job.i)
		p.wg.Done()
	}
}

func (p *rowWorkerPool) run(lo, hi int, f func(int)) {
	p.wg.Add(hi - lo)
	for i := lo; i < hi; i++ {
		p.jobs <- rowJob{i: i, f: f}
	}
	p.wg.Wait()
}

func globalRowWorkerPool() *rowWorkerPool {
	poolOnce.Do(func() {
		pool = newRowWorkerPool(currentParallelism())
	})
	return pool
}

// parallelRowUpdate applies f(i) for every i in [lo, hi), bounded to the
// globally configured number of workers. Each call is independent: f(i)
// only reads row k's fixed values and writes row i, so there is no
// cross-row data race to guard against beyond the fan-out itself.
func parallelRowUpdate(lo, hi int, f func(i int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	limit := currentParallelism()
	if limit <= 1 || n < 2*limit {
		for i := lo; i < hi; i++ {
			f(i)
		}
		return
	}
	globalRowWorkerPool().run(lo, hi, f)
}
