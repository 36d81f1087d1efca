package transport

import "encoding/json"

type (
	HealthRequest  struct{}
	HealthResponse struct {
		Status string `json:"status"`
	}

	// Payload carries a transaction either as the hex of its canonical encoding or as JSON.
	Payload struct {
		Hex         string          `json:"hex,omitempty"`
		Transaction json.RawMessage `json:"transaction,omitempty"`
	}

	DecodeRequest struct {
		Payload
	}
	DecodeResponse struct {
		ID           string          `json:"id"`
		Kind         string          `json:"kind"`
		Size         int             `json:"size"`
		MeteredBytes int             `json:"metered_bytes"`
		Transaction  json.RawMessage `json:"transaction"`
		Offsets      Offsets         `json:"offsets"`
	}
	Offsets struct {
		Inputs    int   `json:"inputs"`
		Input     []int `json:"input"`
		Outputs   int   `json:"outputs"`
		Output    []int `json:"output"`
		Witnesses int   `json:"witnesses"`
		Witness   []int `json:"witness"`
	}

	CheckRequest struct {
		Transactions   []Payload `json:"transactions"`
		BlockHeight    uint64    `json:"block_height"`
		SkipSignatures bool      `json:"skip_signatures,omitempty"`
	}
	CheckResponse struct {
		Results []CheckResult `json:"results"`
	}
	CheckResult struct {
		ID           string    `json:"id,omitempty"`
		Kind         string    `json:"kind,omitempty"`
		Accepted     bool      `json:"accepted"`
		Rule         string    `json:"rule,omitempty"`
		Error        string    `json:"error,omitempty"`
		MinFee       uint64    `json:"min_fee"`
		MaxFee       uint64    `json:"max_fee"`
		FreeBalances []Balance `json:"free_balances,omitempty"`
		ArchiveError string    `json:"archive_error,omitempty"`
	}
	Balance struct {
		AssetID string `json:"asset_id"`
		Amount  uint64 `json:"amount"`
	}

	LookupRequest struct {
		ID string `json:"id"`
	}
	LookupResponse struct {
		ID           string    `json:"id"`
		Network      string    `json:"network"`
		Kind         string    `json:"kind"`
		BlockHeight  uint64    `json:"block_height"`
		GasPrice     uint64    `json:"gas_price"`
		GasLimit     uint64    `json:"gas_limit"`
		Maturity     uint64    `json:"maturity"`
		MinFee       uint64    `json:"min_fee"`
		MaxFee       uint64    `json:"max_fee"`
		CheckedAt    string    `json:"checked_at"`
		Raw          string    `json:"raw"`
		FreeBalances []Balance `json:"free_balances"`
	}
)
