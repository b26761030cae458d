package engine

import (
	"sort"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// Optimizer runs the 1-D stock cutting heuristic.
type Optimizer struct {
	Settings model.Settings
}

func New(settings model.Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize packs the required lengths into boards and returns the standard
// stock length bought for each board, one entry per board.
func Optimize(requiredLengths []int, kerf, maxRawLength int, catalog []int) []int {
	boards := packFirstFit(sortedDescending(requiredLengths), kerf, maxRawLength)
	sizes := make([]int, len(boards))
	for i := range boards {
		assignStockLength(&boards[i], catalog)
		sizes[i] = boards[i].StockLength
	}
	return sizes
}

// Pack packs the required lengths into boards using the configured algorithm
// and assigns each board its standard stock length. The input is not modified.
func (o *Optimizer) Pack(requiredLengths []int) []model.Board {
	lengths := sortedDescending(requiredLengths)

	var boards []model.Board
	if o.Settings.Algorithm == model.AlgorithmBestFit {
		boards = packBestFit(lengths, o.Settings.SawKerf, o.Settings.MaxRawLength)
	} else {
		boards = packFirstFit(lengths, o.Settings.SawKerf, o.Settings.MaxRawLength)
	}

	for i := range boards {
		assignStockLength(&boards[i], o.Settings.StockSizes)
	}
	return boards
}

// PlanGroup packs one stock group.
func (o *Optimizer) PlanGroup(group model.StockGroup) model.GroupPlan {
	return model.GroupPlan{Stock: group.Key, Boards: o.Pack(group.Lengths)}
}

// sortedDescending returns a sorted copy, largest first.
func sortedDescending(lengths []int) []int {
	out := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// packFirstFit places every piece in the first board, in creation order, whose
// remaining capacity takes the piece plus kerf. Kerf is charged per piece,
// never against the board capacity.
func packFirstFit(lengths []int, kerf, capacity int) []model.Board {
	var boards []model.Board
	for _, p := range lengths {
		need := p + kerf
		placed := false
		for i := range boards {
			if boards[i].Remaining() >= need {
				boards[i].Used += need
				boards[i].Cuts = append(boards[i].Cuts, p)
				placed = true
				break
			}
		}
		if !placed {
			boards = append(boards, model.NewBoard(capacity, p, kerf))
		}
	}
	return boards
}

// packBestFit places every piece in the board left with the least free
// capacity after the cut; ties go to the earliest board.
func packBestFit(lengths []int, kerf, capacity int) []model.Board {
	var boards []model.Board
	for _, p := range lengths {
		need := p + kerf
		best := -1
		for i := range boards {
			rest := boards[i].Remaining() - need
			if rest < 0 {
				continue
			}
			if best < 0 || rest < boards[best].Remaining()-need {
				best = i
			}
		}
		if best < 0 {
			boards = append(boards, model.NewBoard(capacity, p, kerf))
			continue
		}
		boards[best].Used += need
		boards[best].Cuts = append(boards[best].Cuts, p)
	}
	return boards
}

// assignStockLength picks the smallest catalog size that holds the board's used
// length. With no such size the board falls back to its capacity, and is marked
// oversize when even that is too short.
func assignStockLength(b *model.Board, catalog []int) {
	sizes := append([]int(nil), catalog...)
	sort.Ints(sizes)

	b.StockLength = b.Capacity
	for _, size := range sizes {
		if size >= b.Used {
			b.StockLength = size
			break
		}
	}
	b.Oversize = b.Used > b.StockLength
}
