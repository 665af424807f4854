package pathfind_test

import (
	"fmt"

	"github.com/bastiangx/algocore/pkg/pathfind"
)

// ExampleRun routes around a wall with breadth-first search.
//
//	S . #
//	. . #
//	. . E
func ExampleRun() {
	g, err := pathfind.ParseGrid([]string{
		"S.#",
		"..#",
		"..E",
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	res, _ := pathfind.Run(pathfind.BFS, g)
	fmt.Printf("success=%t length=%d explored=%d steps=%d efficiency=%.2f\n",
		res.Success, res.PathLength, res.CellsExplored, len(res.Steps), res.Efficiency)
	fmt.Println(res.Path)

	// Output:
	// success=true length=4 explored=7 steps=9 efficiency=0.57
	// [(0, 0) (1, 0) (2, 0) (2, 1) (2, 2)]
}
