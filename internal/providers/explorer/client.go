// Package explorer fetches account transaction history from a
// blockscout-style explorer API. It is the single boundary where the
// explorer's loosely-typed records are validated and coerced into typed
// domain records.
package explorer

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
)

// TxLister defines the interface for fetching an address's ordered
// transaction history
//
//go:generate mockgen -source=client.go -destination=../../mocks/explorer.go -package=mocks -mock_names=TxLister=MockTxLister
type TxLister interface {
	// ListTransactions returns the full transaction history for address in
	// ascending timestamp order. A non-success explorer status yields an
	// empty list, not an error.
	ListTransactions(ctx context.Context, address string) ([]domain.TransactionRecord, error)
}

// rawTransaction mirrors the explorer's wire shape: every field is a string.
type rawTransaction struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Input     string `json:"input"`
	Value     string `json:"value"`
	TimeStamp string `json:"timeStamp"`
}

type txListResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Result  []rawTransaction `json:"result"`
}

type client struct {
	baseURL string
	http    adapter.HTTPClient
}

// NewClient creates a new explorer client
func NewClient(baseURL string, httpClient adapter.HTTPClient) TxLister {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ListTransactions fetches the txlist for address. Status other than "1"
// means "no usable history" and maps to an empty list.
func (c *client) ListTransactions(ctx context.Context, address string) ([]domain.TransactionRecord, error) {
	reqURL := fmt.Sprintf("%s/api?module=account&action=txlist&address=%s&startblock=0&endblock=99999999&sort=asc",
		c.baseURL, url.QueryEscape(address))

	var resp txListResponse
	if err := c.http.Get(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch transaction list: %w", err)
	}

	if resp.Status != "1" {
		logger.DebugCtx(ctx, "Explorer returned non-success status, treating as empty history",
			zap.String("address", address),
			zap.String("status", resp.Status),
			zap.String("message", resp.Message))
		return []domain.TransactionRecord{}, nil
	}

	records := make([]domain.TransactionRecord, 0, len(resp.Result))
	for _, raw := range resp.Result {
		record, ok := coerceRecord(raw)
		if !ok {
			logger.WarnCtx(ctx, "Skipping malformed explorer record",
				zap.String("address", address),
				zap.String("from", raw.From),
				zap.String("timestamp", raw.TimeStamp))
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// coerceRecord validates and converts one wire record. Records without a
// sender or a parseable timestamp are rejected; a malformed value field is
// coerced to zero since scoring treats value as optional signal.
func coerceRecord(raw rawTransaction) (domain.TransactionRecord, bool) {
	if raw.From == "" {
		return domain.TransactionRecord{}, false
	}

	ts, err := strconv.ParseInt(raw.TimeStamp, 10, 64)
	if err != nil || ts <= 0 {
		return domain.TransactionRecord{}, false
	}

	value := new(big.Int)
	if raw.Value != "" {
		if _, ok := value.SetString(raw.Value, 10); !ok {
			value.SetInt64(0)
		}
	}

	return domain.TransactionRecord{
		From:      strings.ToLower(raw.From),
		To:        strings.ToLower(raw.To),
		Input:     raw.Input,
		Value:     value,
		Timestamp: ts,
	}, true
}
