// Package coinselect picks unspent outputs to fund a target amount.
//
// Selection is pure: it works over a snapshot of candidates handed in by
// the caller and never modifies it. Running out of candidates is not an
// error but an empty selection, so callers can tell a dry pool apart from
// a malformed request.
package coinselect

import (
	"fmt"
	"sort"
	"time"

	"github.com/bsv-blockchain/go-txcore/errors"
	"github.com/bsv-blockchain/go-txcore/model"
)

// Algorithm tags a selection strategy.
type Algorithm int32

const (
	// AlgorithmGreedy prefers the smallest single candidate that covers
	// the target on its own, falling back to accumulating the largest
	// candidates first.
	AlgorithmGreedy Algorithm = iota
)

var algorithmNames = map[Algorithm]string{
	AlgorithmGreedy: "greedy",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}

	return fmt.Sprintf("algorithm(%d)", int32(a))
}

// ParseAlgorithm resolves a configuration string to an Algorithm. The
// empty string resolves to AlgorithmGreedy.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "greedy":
		return AlgorithmGreedy, nil
	default:
		return 0, errors.NewInvalidArgumentError("unknown coin selection algorithm %q", name)
	}
}

// Result is the outcome of one selection. Points is empty when the
// candidates could not cover the target; Change is only meaningful for a
// non-empty selection and is the selected value minus the target.
type Result struct {
	Points []model.OutPoint
	Change uint64
}

// Covered reports whether the selection reached its target.
func (r *Result) Covered() bool {
	return len(r.Points) > 0
}

// Select picks candidates whose combined value covers the target using the
// given algorithm. The candidates slice is read only. An unknown algorithm
// is the only error path; insufficient funds yield an empty result.
func Select(candidates []model.UnspentOutput, targetSatoshis uint64, algorithm Algorithm) (*Result, error) {
	if algorithm != AlgorithmGreedy {
		return nil, errors.NewInvalidArgumentError("unknown coin selection algorithm %d", int32(algorithm))
	}

	initPrometheusMetrics()

	start := time.Now()
	defer func() {
		prometheusCoinSelect.Observe(float64(time.Since(start).Microseconds()) / 1_000_000)
	}()

	result := selectGreedy(candidates, targetSatoshis)

	if result.Covered() {
		prometheusCoinSelectInputs.Observe(float64(len(result.Points)))
	} else {
		prometheusCoinSelectInsufficient.Inc()
	}

	return result, nil
}

// selectGreedy first scans for the smallest candidate worth at least the
// target; ties resolve to the earliest candidate. When no single candidate
// covers the target it accumulates the remaining candidates from largest
// to smallest, keeping equal values in their original order, until the
// target is reached or the pool runs dry.
func selectGreedy(candidates []model.UnspentOutput, targetSatoshis uint64) *Result {
	if len(candidates) == 0 {
		return &Result{}
	}

	coverIdx := -1

	var lessers []model.UnspentOutput

	for i := range candidates {
		if candidates[i].Satoshis >= targetSatoshis {
			if coverIdx == -1 || candidates[i].Satoshis < candidates[coverIdx].Satoshis {
				coverIdx = i
			}

			continue
		}

		lessers = append(lessers, candidates[i])
	}

	if coverIdx != -1 {
		return &Result{
			Points: []model.OutPoint{candidates[coverIdx].OutPoint},
			Change: candidates[coverIdx].Satoshis - targetSatoshis,
		}
	}

	sort.SliceStable(lessers, func(i, j int) bool {
		return lessers[i].Satoshis > lessers[j].Satoshis
	})

	var (
		points []model.OutPoint
		total  uint64
	)

	for _, candidate := range lessers {
		points = append(points, candidate.OutPoint)
		total += candidate.Satoshis

		if total >= targetSatoshis {
			return &Result{
				Points: points,
				Change: total - targetSatoshis,
			}
		}
	}

	return &Result{}
}
