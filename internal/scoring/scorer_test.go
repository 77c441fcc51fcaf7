package scoring_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/scoring"
)

const subject = "0xAbCd000000000000000000000000000000000001"

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func TestScore_EmptyHistoryReturnsBaseline(t *testing.T) {
	vector := scoring.Score(nil, subject)

	assert.Equal(t, scoring.Baseline, vector)
	assert.Equal(t, domain.StageSeed, vector.Stage())
}

func TestScore_QuietTransferHistory(t *testing.T) {
	// Ten plain transfers to a single peer, all in the same second.
	txs := make([]domain.TransactionRecord, 10)
	for i := range txs {
		txs[i] = domain.TransactionRecord{
			From:      subject,
			To:        "0xpeer00000000000000000000000000000000000",
			Input:     "0x",
			Timestamp: 1700000000,
		}
	}

	vector := scoring.Score(txs, subject)

	// aggression: 0.5 * (10/50)
	assert.Equal(t, 10, vector.Aggression)
	// serenity: 0.6 * (10/10) + 0.4 * (1 - 10/50)
	assert.Equal(t, 92, vector.Serenity)
	// no timestamp spread at all
	assert.Equal(t, 0, vector.Chaos)
	// influence: 0.6 * (10/200) + 0.4 * (1/100), rounded
	assert.Equal(t, 3, vector.Influence)
	assert.Equal(t, 1, vector.Connectivity)
	assert.Equal(t, domain.StageSeed, vector.Stage())
}

func TestScore_HeavyContractCaller(t *testing.T) {
	// Twenty high-value contract calls to twenty distinct peers, evenly
	// spaced so the gap variance stays zero.
	txs := make([]domain.TransactionRecord, 20)
	for i := range txs {
		txs[i] = domain.TransactionRecord{
			From:      subject,
			To:        fmt.Sprintf("0xpeer%03d", i),
			Input:     "0xa9059cbb",
			Value:     ether(5),
			Timestamp: int64(1700000000 + i*3600),
		}
	}

	vector := scoring.Score(txs, subject)

	// aggression: 0.5*(20/50) + 0.3*(20/20) + 0.2*(5/5)
	assert.Equal(t, 70, vector.Aggression)
	// serenity: 0 transfers + 0.4*(1 - 20/50)
	assert.Equal(t, 24, vector.Serenity)
	assert.Equal(t, 0, vector.Chaos)
	// influence: 0.6*(20/200) + 0.4*(20/100)
	assert.Equal(t, 14, vector.Influence)
	assert.Equal(t, 20, vector.Connectivity)
	assert.Equal(t, domain.StageWild, vector.Stage())
}

func TestScore_BurstyTimingRaisesChaos(t *testing.T) {
	// Incoming only: gaps of 100s and 400s give a population variance of
	// 22500, which is ~26% of a day.
	txs := []domain.TransactionRecord{
		{From: "0xsender1", To: subject, Timestamp: 1700000000},
		{From: "0xsender2", To: subject, Timestamp: 1700000100},
		{From: "0xsender3", To: subject, Timestamp: 1700000500},
	}

	vector := scoring.Score(txs, subject)

	assert.Equal(t, 0, vector.Aggression)
	assert.Equal(t, 40, vector.Serenity)
	assert.Equal(t, 26, vector.Chaos)
	assert.Equal(t, 2, vector.Influence)
	assert.Equal(t, 3, vector.Connectivity)
}

func TestScore_RatiosClampAtCeiling(t *testing.T) {
	// Far past every normalization ceiling: outgoing, calls, value, count
	// and peers all clamp instead of overflowing the [0,100] range.
	txs := make([]domain.TransactionRecord, 300)
	for i := range txs {
		txs[i] = domain.TransactionRecord{
			From:      subject,
			To:        fmt.Sprintf("0xpeer%03d", i%150),
			Input:     "0xa9059cbb",
			Value:     ether(100),
			Timestamp: 1700000000,
		}
	}

	vector := scoring.Score(txs, subject)

	assert.Equal(t, 100, vector.Aggression)
	assert.Equal(t, 0, vector.Serenity)
	assert.Equal(t, 100, vector.Influence)
	assert.Equal(t, 100, vector.Connectivity)
	assert.True(t, vector.Valid())
}

func TestScore_IsPure(t *testing.T) {
	txs := []domain.TransactionRecord{
		{From: subject, To: "0xpeer", Value: ether(1), Timestamp: 1700000000},
		{From: "0xother", To: subject, Timestamp: 1700009999},
	}

	first := scoring.Score(txs, subject)
	second := scoring.Score(txs, subject)

	assert.Equal(t, first, second)
}
