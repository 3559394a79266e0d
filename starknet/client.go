package starknet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dojoengine/worldscan/core/felt"
	"github.com/dojoengine/worldscan/utils"
)

// Client talks to a Starknet node over HTTP JSON-RPC 2.0 and implements
// Provider.
type Client struct {
	url     string
	client  *http.Client
	timeout time.Duration
	log     utils.SimpleLogger

	nextID atomic.Uint64
}

var _ Provider = (*Client)(nil)

func NewClient(rpcURL string, log utils.SimpleLogger) *Client {
	rpcURL = strings.TrimSuffix(rpcURL, "/")
	return &Client{
		url:     rpcURL,
		timeout: 10 * time.Second,
		client:  http.DefaultClient,
		log:     log,
	}
}

// WithTimeout returns the client with the given per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

func (c *Client) ClassHashAt(ctx context.Context, address *felt.Felt, blockID BlockID) (*felt.Felt, error) {
	classHash := new(felt.Felt)
	if err := c.do(ctx, "starknet_getClassHashAt", []any{blockID, address}, classHash); err != nil {
		return nil, err
	}
	return classHash, nil
}

func (c *Client) Call(ctx context.Context, call FunctionCall, blockID BlockID) ([]*felt.Felt, error) {
	var result []*felt.Felt
	if err := c.do(ctx, "starknet_call", []any{call, blockID}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Events(ctx context.Context, filter EventFilter, continuationToken string, chunkSize uint64) (*EventsChunk, error) {
	arg := struct {
		EventFilter
		ContinuationToken string `json:"continuation_token,omitempty"`
		ChunkSize         uint64 `json:"chunk_size"`
	}{
		EventFilter:       filter,
		ContinuationToken: continuationToken,
		ChunkSize:         chunkSize,
	}

	chunk := new(EventsChunk)
	if err := c.do(ctx, "starknet_getEvents", []any{arg}, chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}

type rpcRequest struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      uint64 `json:"id"`
}

type rpcResponse struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      uint64          `json:"id"`
}

// do performs one JSON-RPC call and decodes its result into out. An error
// object in the response surfaces as *Error so callers can classify it.
func (c *Client) do(ctx context.Context, method string, params []any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := rpcRequest{
		Version: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debugw("Calling Starknet JSON-RPC method", "method", method)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(respBody) > 0 {
			return fmt.Errorf("%s: %s", resp.Status, respBody)
		}
		return errors.New(resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	return json.Unmarshal(rpcResp.Result, out)
}
