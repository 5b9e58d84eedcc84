package domain

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for governance operations
var (
	// ErrUnauthorized is returned when the caller holds none of the gating asset
	ErrUnauthorized = errors.New("caller does not hold the gating NFT")

	// ErrNotFound is returned when a requested proposal doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrVotingClosed is returned when a vote arrives at or after the deadline
	ErrVotingClosed = errors.New("voting period has ended")

	// ErrVotingStillOpen is returned when execution is attempted before the deadline
	ErrVotingStillOpen = errors.New("voting period is still open")

	// ErrAlreadyVoted is returned when a principal votes twice on the same proposal
	ErrAlreadyVoted = errors.New("already voted on this proposal")

	// ErrAlreadyExecuted is returned when a proposal has already been executed
	ErrAlreadyExecuted = errors.New("proposal already executed")

	// ErrExecutionFailed is returned when the treasury or marketplace rejects the purchase
	ErrExecutionFailed = errors.New("proposal execution failed")

	// ErrInvalidChoice is returned for vote values other than Yay or Nay
	ErrInvalidChoice = errors.New("invalid vote choice")
)

// Treasury and marketplace errors
var (
	ErrInsufficientFunds = errors.New("insufficient treasury funds")
	ErrItemUnavailable   = errors.New("item not available in marketplace")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// ExecutionFailedError carries the purchase that was attempted when execution failed.
// The proposal stays Closed so execution can be retried.
type ExecutionFailedError struct {
	ProposalID uint64
	ItemID     uint64
	Price      *big.Int
	Err        error
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("proposal %d: purchase of item %d for %s wei failed: %v",
		e.ProposalID, e.ItemID, e.Price, e.Err)
}

func (e *ExecutionFailedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExecutionFailed) hold for every ExecutionFailedError.
func (e *ExecutionFailedError) Is(target error) bool {
	return target == ErrExecutionFailed
}
