package starknet

import (
	"errors"
	"fmt"
)

// Error codes defined by the Starknet JSON-RPC specification that the
// manifest reconstruction needs to tell apart.
const (
	CodeContractNotFound = 20
	CodeBlockNotFound    = 24
	CodeContractError    = 40
)

// Error is a Starknet JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

// IsContractNotFound reports whether err is the ledger's "Contract not
// found" response.
func IsContractNotFound(err error) bool {
	return hasCode(err, CodeContractNotFound)
}

// IsContractError reports whether err is the ledger's "Contract error"
// response, returned when a call's execution reverts.
func IsContractError(err error) bool {
	return hasCode(err, CodeContractError)
}

func hasCode(err error, code int) bool {
	var rpcErr *Error
	return errors.As(err, &rpcErr) && rpcErr.Code == code
}
