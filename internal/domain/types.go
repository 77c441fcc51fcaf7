package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Stage is the coarse classification of a spirit, derived purely from its
// current attribute vector. It is never stored as independent state.
type Stage string

const (
	StageSeed     Stage = "seed"
	StageWild     Stage = "wild"
	StageAscended Stage = "ascended"
)

// AttributeVector is the behavioral personality of an account, each dimension
// clamped to [0,100].
type AttributeVector struct {
	Aggression   int `json:"aggression"`
	Serenity     int `json:"serenity"`
	Chaos        int `json:"chaos"`
	Influence    int `json:"influence"`
	Connectivity int `json:"connectivity"`
}

// Stage derives the classification from the vector alone.
func (v AttributeVector) Stage() Stage {
	switch {
	case v.Influence > 70 && v.Connectivity > 60:
		return StageAscended
	case v.Aggression > 50 || v.Chaos > 50:
		return StageWild
	default:
		return StageSeed
	}
}

// Valid reports whether every field sits in [0,100].
func (v AttributeVector) Valid() bool {
	for _, f := range []int{v.Aggression, v.Serenity, v.Chaos, v.Influence, v.Connectivity} {
		if f < 0 || f > 100 {
			return false
		}
	}
	return true
}

// String renders the vector in a stable, order-sensitive form. The artwork
// seed is derived from this exact serialization, so the field order must not
// change.
func (v AttributeVector) String() string {
	return fmt.Sprintf("a=%d;s=%d;c=%d;i=%d;n=%d",
		v.Aggression, v.Serenity, v.Chaos, v.Influence, v.Connectivity)
}

// TransactionRecord is one historical chain transaction as reported by the
// block explorer. Records are transient: fetched per evolution run, never
// persisted.
type TransactionRecord struct {
	From      string
	To        string
	Input     string
	Value     *big.Int
	Timestamp int64
}

// Outgoing reports whether the record was sent by the given address.
func (t TransactionRecord) Outgoing(address string) bool {
	return strings.EqualFold(t.From, address)
}

// ContractCall reports whether the record carries call data.
func (t TransactionRecord) ContractCall() bool {
	return t.Input != "" && t.Input != "0x"
}

// SpiritState is the on-chain attribute tuple for a token.
type SpiritState struct {
	Vector      AttributeVector
	LastUpdated time.Time
}

// Snapshot is one immutable, TTL-bounded record of an evolution event. The
// embedded vector flattens into the JSON payload, matching the shape readers
// expect from the entity store.
type Snapshot struct {
	EntityKey    string `json:"id,omitempty"`
	OwnerAddress string `json:"spiritAddress"`
	TokenID      string `json:"tokenId"`
	AttributeVector
	Stage     Stage `json:"stage"`
	CreatedAt int64 `json:"createdAt"` // unix milliseconds
}

// Coordinate addresses one cell of the shared wall grid.
type Coordinate struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// Stroke is one paint action on the shared wall. Strokes are never amended;
// conflicting strokes at the same coordinate coexist in storage and are
// resolved at merge time.
type Stroke struct {
	EntityKey string `json:"id,omitempty"`
	X         uint16 `json:"x"`
	Y         uint16 `json:"y"`
	Color     uint32 `json:"color"`
	TokenID   string `json:"tokenId"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	TxHash    string `json:"txHash,omitempty"`
	Block     uint64 `json:"blockNumber,omitempty"`
}

// Coordinate returns the stroke's grid cell.
func (s Stroke) Coordinate() Coordinate {
	return Coordinate{X: s.X, Y: s.Y}
}

// WallState is the reconciled one-stroke-per-coordinate view of the wall.
// It is ephemeral and recomputed on every read.
type WallState map[Coordinate]Stroke
