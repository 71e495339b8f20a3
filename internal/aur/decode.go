package aur

import (
	"encoding/json"
	"errors"
	"fmt"
)

// rpcResponse is the envelope of every AUR RPC v5 reply.
type rpcResponse struct {
	Version     int              `json:"version"`
	Type        string           `json:"type"`
	ResultCount *int             `json:"resultcount"`
	Results     *[]PackageRecord `json:"results"`
	Error       string           `json:"error"`
}

// Decode classifies raw and parses its body. Non-2xx responses are rejected
// without looking at the body. The returned error is always a *QueryError.
func Decode(raw *RawResponse) (*DecodedResult, error) {
	res, qerr := decodeBatch(0, raw)
	if qerr != nil {
		return nil, qerr
	}
	return res, nil
}

func decodeBatch(batch int, raw *RawResponse) (*DecodedResult, *QueryError) {
	if raw == nil {
		return nil, decodeError(batch, "empty response", nil)
	}
	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		return nil, statusErrorFrom(batch, raw)
	}

	var resp rpcResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, decodeError(batch, "failed to parse response", err)
	}

	if resp.Type == "error" {
		msg := resp.Error
		if msg == "" {
			msg = "unspecified error"
		}
		return nil, decodeError(batch, "AUR returned an error", errors.New(msg))
	}
	if resp.ResultCount == nil {
		return nil, decodeError(batch, "malformed response", errors.New("missing resultcount"))
	}
	if resp.Results == nil {
		return nil, decodeError(batch, "malformed response", errors.New("missing results"))
	}

	records := *resp.Results
	if *resp.ResultCount != len(records) {
		return nil, decodeError(batch, "malformed response",
			fmt.Errorf("resultcount %d does not match %d results", *resp.ResultCount, len(records)))
	}
	for i, r := range records {
		if r.Name == "" {
			return nil, decodeError(batch, "malformed response", fmt.Errorf("result %d has no Name", i))
		}
	}

	return &DecodedResult{Records: records}, nil
}
