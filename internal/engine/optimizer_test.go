package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestSettings() model.Settings {
	return model.DefaultSettings()
}

func cutsOf(boards []model.Board) [][]int {
	out := make([][]int, len(boards))
	for i, b := range boards {
		out[i] = b.Cuts
	}
	return out
}

func TestOptimize_EmptyInput(t *testing.T) {
	assert.Empty(t, Optimize(nil, 4, 6000, model.StandardStockSizes))
	assert.Empty(t, New(defaultTestSettings()).Pack([]int{}))
}

func TestOptimize_FourLegs(t *testing.T) {
	sizes := Optimize([]int{1800, 1800, 1800, 1800}, 4, 6000, model.StandardStockSizes)
	assert.Equal(t, []int{5700, 2400}, sizes)
}

func TestPack_FourLegsBoards(t *testing.T) {
	boards := New(defaultTestSettings()).Pack([]int{1800, 1800, 1800, 1800})

	require.Len(t, boards, 2)
	assert.Equal(t, []int{1800, 1800, 1800}, boards[0].Cuts)
	assert.Equal(t, 5412, boards[0].Used)
	assert.Equal(t, 5700, boards[0].StockLength)
	assert.Equal(t, 288, boards[0].Waste())

	assert.Equal(t, []int{1800}, boards[1].Cuts)
	assert.Equal(t, 1804, boards[1].Used)
	assert.Equal(t, 2400, boards[1].StockLength)
	assert.False(t, boards[0].Oversize)
}

func TestOptimize_OversizePiece(t *testing.T) {
	sizes := Optimize([]int{7000}, 4, 6000, model.StandardStockSizes)
	assert.Equal(t, []int{6000}, sizes)

	boards := New(defaultTestSettings()).Pack([]int{7000, 500})
	require.Len(t, boards, 2, "nothing fits next to an oversize piece")
	assert.True(t, boards[0].Oversize)
	assert.Equal(t, 6000, boards[0].StockLength)
	assert.False(t, boards[1].Oversize)
	assert.Equal(t, 2400, boards[1].StockLength)
}

func TestOptimize_EmptyCatalogFallsBackToMaxRaw(t *testing.T) {
	assert.Equal(t, []int{6000, 6000}, Optimize([]int{3000, 3000}, 4, 6000, nil))
}

func TestOptimize_UnsortedCatalog(t *testing.T) {
	sizes := Optimize([]int{1000}, 0, 6000, []int{6000, 1200, 2400})
	assert.Equal(t, []int{1200}, sizes)
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	in := []int{300, 2000, 1500}
	Optimize(in, 4, 6000, model.StandardStockSizes)
	assert.Equal(t, []int{300, 2000, 1500}, in)
}

func TestOptimize_ExactFitIncludesKerf(t *testing.T) {
	// 2996 + 4 twice fills 6000 exactly
	boards := New(defaultTestSettings()).Pack([]int{2996, 2996})
	require.Len(t, boards, 1)
	assert.Equal(t, 6000, boards[0].Used)
	assert.Equal(t, 6000, boards[0].StockLength)

	boards = New(defaultTestSettings()).Pack([]int{2997, 2996})
	assert.Len(t, boards, 2)
}

func TestPack_FirstFitVersusBestFit(t *testing.T) {
	lengths := []int{200, 2850, 3200, 2900}

	ff := defaultTestSettings()
	ff.SawKerf = 0
	boards := New(ff).Pack(lengths)
	assert.Equal(t, [][]int{{3200, 200}, {2900, 2850}}, cutsOf(boards))

	bf := ff
	bf.Algorithm = model.AlgorithmBestFit
	boards = New(bf).Pack(lengths)
	assert.Equal(t, [][]int{{3200}, {2900, 2850, 200}}, cutsOf(boards))
	assert.Equal(t, 3300, boards[0].StockLength)
	assert.Equal(t, 6000, boards[1].StockLength)
}

func TestPack_Deterministic(t *testing.T) {
	lengths := []int{1200, 450, 2200, 450, 980, 3100, 1200, 60}
	opt := New(defaultTestSettings())

	a := opt.Pack(lengths)
	b := opt.Pack(lengths)
	assert.Equal(t, cutsOf(a), cutsOf(b))
	for i := range a {
		assert.Equal(t, a[i].StockLength, b[i].StockLength)
	}
}

func TestPack_CapacityInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, algo := range []model.Algorithm{model.AlgorithmFirstFit, model.AlgorithmBestFit} {
		s := defaultTestSettings()
		s.Algorithm = algo
		opt := New(s)

		for round := 0; round < 50; round++ {
			n := 1 + rng.Intn(30)
			lengths := make([]int, n)
			for i := range lengths {
				lengths[i] = 50 + rng.Intn(5000)
			}

			boards := opt.Pack(lengths)
			placed := 0
			for _, b := range boards {
				sum := 0
				for _, c := range b.Cuts {
					sum += c + s.SawKerf
				}
				assert.Equal(t, sum, b.Used)
				assert.LessOrEqual(t, b.Used, s.MaxRawLength)
				assert.GreaterOrEqual(t, b.StockLength, b.Used)
				assert.Contains(t, s.StockSizes, b.StockLength)
				placed += len(b.Cuts)
			}
			assert.Equal(t, n, placed, "%s round %d", algo, round)
		}
	}
}

func TestPlanGroup(t *testing.T) {
	group := model.StockGroup{
		Key:     model.StockKey{Material: "Pine", Height: 45, Width: 45},
		Lengths: []int{720, 720, 720, 720},
	}
	plan := New(defaultTestSettings()).PlanGroup(group)

	assert.Equal(t, group.Key, plan.Stock)
	require.Len(t, plan.Boards, 1)
	assert.Equal(t, 2896, plan.Boards[0].Used)
	assert.Equal(t, 3000, plan.Boards[0].StockLength)
}
