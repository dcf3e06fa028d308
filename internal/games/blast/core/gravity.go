package core

import "sort"

// Move is one gravity move.
type Move struct {
	Handle Handle
	From   Coord
	To     Coord
}

// GravityResult summarizes a column collapse and refill.
type GravityResult struct {
	Moves   []Move
	Spawned []Coord         // target cells of new tiles
	Deficit map[int]int     // spawned tiles per column
	Spawns  map[Coord]Coord // target cell -> spawn cell above the board
}

// applyGravity collapses every column in lowest, scanning upward from the
// recorded row, and refills the remaining gap at the top of each column.
//
// Layered tiles never move and act as a floor: the deficit below them is
// discarded and the scan continues above them with a fresh target.
func (e *Engine) applyGravity(lowest map[int]int, buf *CommandBuffer) GravityResult {
	res := GravityResult{
		Deficit: make(map[int]int),
		Spawns:  make(map[Coord]Coord),
	}

	cols := make([]int, 0, len(lowest))
	for col := range lowest {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for _, col := range cols {
		start := lowest[col]
		deficit := 0
		target := start

		for row := start; row >= 0; row-- {
			c := C(row, col)
			h, ok := e.index.Get(c)
			if !ok {
				deficit++
				continue
			}
			t, ok := e.store.Get(h)
			if !ok {
				deficit++
				continue
			}
			if t.Block.Movable() && row != target {
				to := C(target, col)
				buf.Move(h, c, to)
				e.index.Remove(c)
				e.index.Set(to, h)
				res.Moves = append(res.Moves, Move{Handle: h, From: c, To: to})
				target--
				continue
			}
			deficit = 0
			target = row - 1
		}

		if deficit > 0 {
			e.spawnColumn(col, deficit, buf, &res)
		}
	}
	return res
}

// spawnColumn creates n random cubes falling into rows 0..n-1 of col. The
// tile bound for row n-1 starts at SpawnRowOffset and each one above it
// starts one row higher.
func (e *Engine) spawnColumn(col, n int, buf *CommandBuffer, res *GravityResult) {
	for i := 0; i < n; i++ {
		target := C(i, col)
		spawn := C(e.rules.SpawnRowOffset-(n-i-1), col)
		t := Tile{
			Block:     BlockCube,
			Color:     e.randomColor(),
			Coord:     target,
			Touchable: false,
			Moving:    true,
			Pos:       e.cfg.TileWorldPosition(spawn),
		}
		buf.Create(t)
		res.Spawned = append(res.Spawned, target)
		res.Spawns[target] = spawn
	}
	res.Deficit[col] = n
	e.stats.Spawned += n
}
