// Command planbench runs the space-time focal-search planner over a small
// demo grid, one call per agent, fanned out concurrently with errgroup,
// standing in for an outer solver that parallelizes per-agent-plan calls
// (the CBS/CLI surface itself is out of scope for this module).
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/stfocal/internal/constraint"
	"github.com/elektrokombinacija/stfocal/internal/core"
	"github.com/elektrokombinacija/stfocal/internal/planner"
)

type agentSpec struct {
	id    core.AgentID
	start core.Loc2D
	goal  core.Loc2D
}

func main() {
	log.Println("=== planbench: space-time focal search ===")

	grid := buildDemoGrid()
	p := planner.NewPlanner(grid)

	agents := []agentSpec{
		{id: 0, start: grid.Linearize(0, 0), goal: grid.Linearize(9, 9)},
		{id: 1, start: grid.Linearize(9, 0), goal: grid.Linearize(0, 9)},
		{id: 2, start: grid.Linearize(0, 9), goal: grid.Linearize(9, 0)},
		{id: 3, start: grid.Linearize(9, 9), goal: grid.Linearize(0, 0)},
	}

	results := make([]core.Path, len(agents))
	lowerBounds := make([]int, len(agents))

	g, _ := errgroup.WithContext(context.Background())
	for i, a := range agents {
		i, a := i, a
		g.Go(func() error {
			ct := constraint.NewTable(0, 200)
			start := time.Now()
			path, fLB := p.FindSuboptimalPath(a.id, a.start, a.goal, 0, ct, 0, 1.2)
			log.Printf("agent %d: start=%d goal=%d f_lb=%d cost=%d elapsed=%v",
				a.id, a.start, a.goal, fLB, path.Cost(), time.Since(start))
			results[i] = path
			lowerBounds[i] = fLB
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("planbench: %v", err)
	}

	for i, a := range agents {
		if len(results[i]) == 0 {
			fmt.Printf("agent %d: no path found within length_max (f_lb=%d)\n", a.id, lowerBounds[i])
			continue
		}
		fmt.Printf("agent %d: %d steps, cost=%d, f_lb=%d\n", a.id, len(results[i]), results[i].Cost(), lowerBounds[i])
	}
}

// buildDemoGrid returns a 10x10 grid with a short vertical wall (column 5,
// rows 2-7), open
// enough that every demo agent has a feasible route around it.
func buildDemoGrid() *core.Grid {
	grid := core.NewGrid(10, 10)
	for i := 2; i < 8; i++ {
		grid.SetObstacle(grid.Linearize(i, 5), true)
	}
	return grid
}
