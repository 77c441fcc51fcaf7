// Package scoring derives the behavioral attribute vector of an account from
// its raw transaction history. Scoring is a pure function of the input list
// and the subject address: no I/O, no clock, no hidden state.
package scoring

import (
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/soulscape/evolution-engine/internal/domain"
)

// Normalization ceilings for the weighted ratios. Each raw count is divided
// by its ceiling and clamped to [0,1] before weighting.
const (
	maxOutgoing      = 50
	maxContractCalls = 20
	maxAvgValueEther = 5
	maxTxCount       = 200
	maxPeers         = 100
	secondsPerDay    = 24 * 60 * 60
)

var weiPerEther = new(big.Float).SetFloat64(1e18)

// Baseline is the dormant-account prior returned for an empty history.
var Baseline = domain.AttributeVector{
	Aggression:   10,
	Serenity:     60,
	Chaos:        10,
	Influence:    5,
	Connectivity: 5,
}

// Score computes the attribute vector for address from its transaction
// history. Every output field is clamped to [0,100].
func Score(txs []domain.TransactionRecord, address string) domain.AttributeVector {
	if len(txs) == 0 {
		return Baseline
	}

	var outgoing, contractCalls int
	outgoingValue := new(big.Int)
	peers := make(map[string]struct{})

	for _, tx := range txs {
		if tx.Outgoing(address) {
			outgoing++
			if tx.ContractCall() {
				contractCalls++
			}
			if tx.Value != nil {
				outgoingValue.Add(outgoingValue, tx.Value)
			}
			if tx.To != "" {
				peers[strings.ToLower(tx.To)] = struct{}{}
			}
		}
		if strings.EqualFold(tx.To, address) {
			peers[strings.ToLower(tx.From)] = struct{}{}
		}
	}

	transfers := outgoing - contractCalls
	avgValue := avgOutgoingEther(outgoingValue, outgoing)
	variance := timestampDeltaVariance(txs)

	aggression := scale(0.5*clamp01(float64(outgoing)/maxOutgoing) +
		0.3*clamp01(float64(contractCalls)/maxContractCalls) +
		0.2*clamp01(avgValue/maxAvgValueEther))
	serenity := scale(0.6*clamp01(float64(transfers)/float64(max(1, outgoing))) +
		0.4*(1-clamp01(float64(outgoing)/maxOutgoing)))
	chaos := scale(clamp01(variance / secondsPerDay))
	influence := scale(0.6*clamp01(float64(len(txs))/maxTxCount) +
		0.4*clamp01(float64(len(peers))/maxPeers))
	connectivity := scale(clamp01(float64(len(peers)) / maxPeers))

	return domain.AttributeVector{
		Aggression:   aggression,
		Serenity:     serenity,
		Chaos:        chaos,
		Influence:    influence,
		Connectivity: connectivity,
	}
}

// avgOutgoingEther converts the summed outgoing wei value to the mean value
// per outgoing transaction, in ether.
func avgOutgoingEther(totalWei *big.Int, outgoing int) float64 {
	if outgoing == 0 || totalWei.Sign() == 0 {
		return 0
	}

	ether := new(big.Float).Quo(new(big.Float).SetInt(totalWei), weiPerEther)
	avg, _ := new(big.Float).Quo(ether, big.NewFloat(float64(outgoing))).Float64()
	return avg
}

// timestampDeltaVariance is the population variance, in seconds squared, of
// the gaps between consecutive (sorted) transaction timestamps. It is 0 when
// there are fewer than two gaps or the mean gap is 0.
func timestampDeltaVariance(txs []domain.TransactionRecord) float64 {
	timestamps := make([]int64, 0, len(txs))
	for _, tx := range txs {
		timestamps = append(timestamps, tx.Timestamp)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	deltas := make([]float64, 0, len(timestamps))
	for i := 1; i < len(timestamps); i++ {
		deltas = append(deltas, float64(timestamps[i]-timestamps[i-1]))
	}
	if len(deltas) == 0 {
		return 0
	}

	var sum float64
	for _, d := range deltas {
		sum += d
	}
	mean := sum / float64(len(deltas))
	if mean == 0 {
		return 0
	}

	var acc float64
	for _, d := range deltas {
		acc += (d - mean) * (d - mean)
	}
	return acc / float64(len(deltas))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// scale converts a [0,1] ratio to an integer in [0,100], guarding against
// rounding overshoot.
func scale(ratio float64) int {
	v := int(math.Round(100 * ratio))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
