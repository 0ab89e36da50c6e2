// Command tailqueuebench drives a single-producer/single-consumer
// throughput comparison across tailqueue, ringqueue, a container/list
// naive baseline, github.com/gammazero/deque, and the bounded
// internal/boundedring ring, then renders the results as an HTML bar
// chart via go-echarts.
package main

import (
	"container/list"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/gsingh-ds/go-atomic-tailqueue/internal/boundedring"
	"github.com/gsingh-ds/go-atomic-tailqueue/ringqueue"
	"github.com/gsingh-ds/go-atomic-tailqueue/tailqueue"
)

func main() {
	items := flag.Int("items", 200_000, "number of items each benchmark pushes through the queue")
	out := flag.String("out", "tailqueuebench.html", "path to write the rendered HTML chart")
	flag.Parse()

	log.Printf("tailqueuebench: %d items per queue implementation", *items)
	logHostInfo()

	results := []result{
		bench("tailqueue", *items, runTailqueue),
		bench("ringqueue", *items, runRingqueue),
		bench("container/list (naive, mutex-guarded)", *items, runListBaseline),
		bench("gammazero/deque (mutex-guarded)", *items, runDequeBaseline),
		bench("boundedring (fixed-capacity MPMC)", *items, runBoundedRingBaseline),
	}

	for _, r := range results {
		log.Printf("%-40s %12.0f items/sec", r.name, r.itemsPerSec)
	}

	if err := renderChart(results, *items, *out); err != nil {
		log.Fatalf("tailqueuebench: render chart: %v", err)
	}
	log.Printf("tailqueuebench: wrote %s", *out)
}

type result struct {
	name        string
	itemsPerSec float64
}

func bench(name string, n int, run func(n int) time.Duration) result {
	elapsed := run(n)
	return result{name: name, itemsPerSec: float64(n) / elapsed.Seconds()}
}

// runTailqueue and its siblings all follow the same shape: one producer
// goroutine enqueues n items, one consumer goroutine dequeues until it
// has seen n items, and the benchmark times from start to consumer
// completion.

func runTailqueue(n int) time.Duration {
	q := tailqueue.New[int]()
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Enqueue(i)
		}
	}()

	consumed := 0
	for consumed < n {
		if _, ok := q.Dequeue(); ok {
			consumed++
		}
	}
	wg.Wait()
	return time.Since(start)
}

func runRingqueue(n int) time.Duration {
	q := ringqueue.New[int](64)
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Enqueue(i)
		}
	}()

	consumed := 0
	for consumed < n {
		if _, ok := q.Dequeue(); ok {
			consumed++
		}
	}
	wg.Wait()
	return time.Since(start)
}

// runListBaseline wraps container/list behind a mutex: the stdlib list
// is not safe for concurrent use on its own, so this is the "naive"
// baseline every queue implementation in this benchmark is measured
// against.
func runListBaseline(n int) time.Duration {
	l := list.New()
	var mu sync.Mutex
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			mu.Lock()
			l.PushBack(i)
			mu.Unlock()
		}
	}()

	consumed := 0
	for consumed < n {
		mu.Lock()
		front := l.Front()
		if front != nil {
			l.Remove(front)
		}
		mu.Unlock()
		if front != nil {
			consumed++
		}
	}
	wg.Wait()
	return time.Since(start)
}

func runDequeBaseline(n int) time.Duration {
	var d deque.Deque[int]
	var mu sync.Mutex
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			mu.Lock()
			d.PushBack(i)
			mu.Unlock()
		}
	}()

	consumed := 0
	for consumed < n {
		mu.Lock()
		var v int
		ok := d.Len() > 0
		if ok {
			v = d.PopFront()
		}
		mu.Unlock()
		if ok {
			_ = v
			consumed++
		}
	}
	wg.Wait()
	return time.Since(start)
}

func runBoundedRingBaseline(n int) time.Duration {
	r := boundedring.New[int](1024)
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !r.Offer(i) {
			}
		}
	}()

	consumed := 0
	for consumed < n {
		if _, ok := r.Poll(); ok {
			consumed++
		}
	}
	wg.Wait()
	return time.Since(start)
}

func logHostInfo() {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		log.Printf("tailqueuebench: cpu.Percent: %v", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("tailqueuebench: mem.VirtualMemory: %v", err)
		return
	}
	load := 0.0
	if len(percents) > 0 {
		load = percents[0]
	}
	log.Printf("host: %d logical CPUs, %.1f%% load, %.1f GiB total memory",
		runtime.NumCPU(), load, float64(vm.Total)/(1<<30))
}

func renderChart(results []result, itemCount int, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "tailqueue throughput comparison",
			Subtitle: fmt.Sprintf("%d-item single-producer/single-consumer run", itemCount),
		}),
	)

	names := make([]string, len(results))
	values := make([]opts.BarData, len(results))
	for i, r := range results {
		names[i] = r.name
		values[i] = opts.BarData{Value: int64(r.itemsPerSec)}
	}

	bar.SetXAxis(names).
		AddSeries("items/sec", values)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tailqueuebench: create %s: %w", path, err)
	}
	defer f.Close()

	return bar.Render(f)
}
