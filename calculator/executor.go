package calculator

import (
	"time"
)

// 按管道分配任务，每根管道在一个时间步内只由一个 worker 计算
type Executor struct {
	dispatchChan chan task
	doneSoFar    chan result
	stop         chan struct{}
	workers      int
}

type task struct {
	index int
	c     Calculator
	in    StepInput
	cond  Conditions
}

type result struct {
	index  int
	report Report
}

func NewExecutor(workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		dispatchChan: make(chan task, 50),
		doneSoFar:    make(chan result, 50),
		stop:         make(chan struct{}),
		workers:      workers,
	}
}

func (e *Executor) Run() {
	for i := 0; i < e.workers; i++ {
		go func() {
			for {
				select {
				case t := <-e.dispatchChan:
					e.doneSoFar <- result{index: t.index, report: t.c.Simulate(t.in, t.cond)}
				case <-e.stop:
					return
				}
			}
		}()
	}
}

func (e *Executor) Stop() {
	close(e.stop)
}

// DispatchTask 所有管道计算同一时间步，返回的结果与 calculators 顺序一致
func (e *Executor) DispatchTask(calculators []Calculator, inputs []StepInput, cond Conditions) ([]Report, time.Duration) {
	start := time.Now()
	reports := make([]Report, len(calculators))
	go func() {
		for i, c := range calculators {
			e.dispatchChan <- task{index: i, c: c, in: inputs[i], cond: cond}
		}
	}()
	for range calculators {
		r := <-e.doneSoFar
		reports[r.index] = r.report
	}
	return reports, time.Since(start)
}
