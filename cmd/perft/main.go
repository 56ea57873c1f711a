// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/kaeldric/chesscore/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, *position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		logw.Infof(ctx, "perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds())
	}
}

func search(pos *board.Position, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var list board.MoveList
	pos.GenerateLegal(&list)

	var nodes int64
	for _, m := range list.Moves {
		var st board.State
		pos.DoMove(m, &st, pos.GivesCheck(m))
		count := search(pos, depth-1, false)
		pos.UndoMove(m)

		if d {
			fmt.Printf("%v: %v\n", board.MoveUCI(pos, m), count)
		}
		nodes += count
	}
	return nodes
}
