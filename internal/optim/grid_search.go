package optim

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// Candidate is one gain triple under evaluation.
type Candidate struct {
	Kp, Ki, Kd float64
}

// GridSearch enumerates the cartesian product of the gain value lists.
type GridSearch struct {
	Kp []float64
	Ki []float64
	Kd []float64
}

// Candidates expands the grid.
func (g *GridSearch) Candidates() []Candidate {
	out := make([]Candidate, 0, len(g.Kp)*len(g.Ki)*len(g.Kd))
	for _, kp := range g.Kp {
		for _, ki := range g.Ki {
			for _, kd := range g.Kd {
				out = append(out, Candidate{Kp: kp, Ki: ki, Kd: kd})
			}
		}
	}
	return out
}

// Result pairs a candidate with its score. Lower is better.
type Result struct {
	Candidate Candidate
	Score     float64
}

// Search scores every candidate on a worker pool and returns the best one.
// Candidates whose score function fails are skipped; Search fails only when
// nothing scored at all or the context was cancelled.
func (g *GridSearch) Search(ctx context.Context, workers int, score func(context.Context, Candidate) (float64, error)) (Result, error) {
	candidates := g.Candidates()
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("empty search grid")
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Candidate)
	results := make(chan Result, len(candidates))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				val, err := score(ctx, c)
				if err != nil {
					continue
				}
				results <- Result{Candidate: c, Score: val}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, c := range candidates {
			select {
			case <-ctx.Done():
				return
			case jobs <- c:
			}
		}
	}()

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	best := Result{Score: math.Inf(1)}
	scored := 0
	for r := range results {
		scored++
		if r.Score < best.Score {
			best = r
		}
	}
	if scored == 0 {
		return Result{}, fmt.Errorf("no candidate could be scored")
	}
	return best, nil
}
