package coinselect

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-txcore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unspent builds a candidate whose outpoint is derived from the id byte so
// selections can be asserted by value and identity at the same time.
func unspent(id byte, satoshis uint64) model.UnspentOutput {
	return model.UnspentOutput{
		OutPoint: model.OutPoint{
			Hash:  chainhash.Hash{id},
			Index: uint32(id),
		},
		Satoshis: satoshis,
	}
}

func TestSelectGreedySingleCover(t *testing.T) {
	candidates := []model.UnspentOutput{
		unspent(1, 50),
		unspent(2, 120),
		unspent(3, 30),
	}

	result, err := Select(candidates, 100, AlgorithmGreedy)
	require.NoError(t, err)
	require.True(t, result.Covered())

	require.Len(t, result.Points, 1)
	assert.Equal(t, candidates[1].OutPoint, result.Points[0])
	assert.Equal(t, uint64(20), result.Change)
}

func TestSelectGreedyPrefersSmallestCover(t *testing.T) {
	candidates := []model.UnspentOutput{
		unspent(1, 500),
		unspent(2, 120),
		unspent(3, 130),
	}

	result, err := Select(candidates, 100, AlgorithmGreedy)
	require.NoError(t, err)

	require.Len(t, result.Points, 1)
	assert.Equal(t, candidates[1].OutPoint, result.Points[0])
	assert.Equal(t, uint64(20), result.Change)
}

func TestSelectGreedyAccumulatesLargestFirst(t *testing.T) {
	candidates := []model.UnspentOutput{
		unspent(1, 10),
		unspent(2, 40),
		unspent(3, 35),
		unspent(4, 5),
	}

	result, err := Select(candidates, 70, AlgorithmGreedy)
	require.NoError(t, err)
	require.True(t, result.Covered())

	require.Len(t, result.Points, 2)
	assert.Equal(t, candidates[1].OutPoint, result.Points[0])
	assert.Equal(t, candidates[2].OutPoint, result.Points[1])
	assert.Equal(t, uint64(5), result.Change)
}

func TestSelectGreedyInsufficient(t *testing.T) {
	candidates := []model.UnspentOutput{
		unspent(1, 10),
		unspent(2, 20),
	}

	result, err := Select(candidates, 100, AlgorithmGreedy)
	require.NoError(t, err)

	assert.False(t, result.Covered())
	assert.Empty(t, result.Points)
	assert.Equal(t, uint64(0), result.Change)
}

func TestSelectGreedyEmptyCandidates(t *testing.T) {
	result, err := Select(nil, 100, AlgorithmGreedy)
	require.NoError(t, err)

	assert.False(t, result.Covered())
	assert.Empty(t, result.Points)
}

func TestSelectGreedyExactCovers(t *testing.T) {
	t.Run("single candidate equal to target", func(t *testing.T) {
		result, err := Select([]model.UnspentOutput{unspent(1, 100)}, 100, AlgorithmGreedy)
		require.NoError(t, err)

		require.Len(t, result.Points, 1)
		assert.Equal(t, uint64(0), result.Change)
	})

	t.Run("accumulation equal to target", func(t *testing.T) {
		candidates := []model.UnspentOutput{
			unspent(1, 60),
			unspent(2, 40),
		}

		result, err := Select(candidates, 100, AlgorithmGreedy)
		require.NoError(t, err)

		require.Len(t, result.Points, 2)
		assert.Equal(t, candidates[0].OutPoint, result.Points[0])
		assert.Equal(t, candidates[1].OutPoint, result.Points[1])
		assert.Equal(t, uint64(0), result.Change)
	})
}

func TestSelectGreedyTiesAreFirstWins(t *testing.T) {
	t.Run("equal covering candidates", func(t *testing.T) {
		candidates := []model.UnspentOutput{
			unspent(1, 120),
			unspent(2, 120),
		}

		result, err := Select(candidates, 100, AlgorithmGreedy)
		require.NoError(t, err)

		require.Len(t, result.Points, 1)
		assert.Equal(t, candidates[0].OutPoint, result.Points[0])
	})

	t.Run("equal accumulated candidates keep input order", func(t *testing.T) {
		candidates := []model.UnspentOutput{
			unspent(1, 30),
			unspent(2, 30),
			unspent(3, 25),
		}

		result, err := Select(candidates, 55, AlgorithmGreedy)
		require.NoError(t, err)

		require.Len(t, result.Points, 2)
		assert.Equal(t, candidates[0].OutPoint, result.Points[0])
		assert.Equal(t, candidates[1].OutPoint, result.Points[1])
		assert.Equal(t, uint64(5), result.Change)
	})
}

func TestSelectGreedyZeroTarget(t *testing.T) {
	candidates := []model.UnspentOutput{
		unspent(1, 5),
		unspent(2, 3),
	}

	// every candidate covers a zero target, so the smallest one is picked
	result, err := Select(candidates, 0, AlgorithmGreedy)
	require.NoError(t, err)

	require.Len(t, result.Points, 1)
	assert.Equal(t, candidates[1].OutPoint, result.Points[0])
	assert.Equal(t, uint64(3), result.Change)
}

func TestSelectDoesNotMutateCandidates(t *testing.T) {
	candidates := []model.UnspentOutput{
		unspent(1, 10),
		unspent(2, 40),
		unspent(3, 35),
		unspent(4, 5),
	}

	original := make([]model.UnspentOutput, len(candidates))
	copy(original, candidates)

	_, err := Select(candidates, 70, AlgorithmGreedy)
	require.NoError(t, err)

	assert.Equal(t, original, candidates)
}

func TestSelectUnknownAlgorithm(t *testing.T) {
	_, err := Select([]model.UnspentOutput{unspent(1, 10)}, 5, Algorithm(42))
	require.Error(t, err)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"greedy", "greedy", AlgorithmGreedy, false},
		{"empty defaults to greedy", "", AlgorithmGreedy, false},
		{"unknown", "knapsack", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "greedy", AlgorithmGreedy.String())
	assert.Equal(t, "algorithm(42)", Algorithm(42).String())
}
