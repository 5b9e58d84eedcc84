package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeProposalCreated         EventType = "ProposalCreated"
	EventTypeVoteCast                EventType = "VoteCast"
	EventTypeProposalExecuted        EventType = "ProposalExecuted"
	EventTypeProposalExecutionFailed EventType = "ProposalExecutionFailed"
	EventTypeTreasuryFunded          EventType = "TreasuryFunded"
)

// GovernanceEvent is the interface for all events emitted by the engine
type GovernanceEvent interface {
	EventName() EventType
	String() string
}

// Event is the envelope published to event sinks
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    GovernanceEvent `json:"payload"`
}

// NewEvent wraps a governance event in an envelope with a fresh id
func NewEvent(payload GovernanceEvent, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       payload.EventName(),
		OccurredAt: at,
		Payload:    payload,
	}
}

// ProposalCreatedEvent is emitted when a holder opens a new proposal
type ProposalCreatedEvent struct {
	ProposalID uint64         `json:"proposalId"`
	ItemID     uint64         `json:"nftTokenId"`
	Proposer   common.Address `json:"proposer"`
	Deadline   time.Time      `json:"deadline"`
}

func (ProposalCreatedEvent) EventName() EventType {
	return EventTypeProposalCreated
}

func (e ProposalCreatedEvent) String() string {
	return fmt.Sprintf("%s: id=%d, item=%d, by=%s, deadline=%d",
		e.EventName(), e.ProposalID, e.ItemID, e.Proposer.Hex(), e.Deadline.Unix())
}

// VoteCastEvent is emitted for every accepted vote
type VoteCastEvent struct {
	ProposalID uint64         `json:"proposalId"`
	Voter      common.Address `json:"voter"`
	Choice     string         `json:"vote"`
}

func (VoteCastEvent) EventName() EventType {
	return EventTypeVoteCast
}

func (e VoteCastEvent) String() string {
	return fmt.Sprintf("%s: id=%d, voter=%s, vote=%s",
		e.EventName(), e.ProposalID, e.Voter.Hex(), e.Choice)
}

// ProposalExecutedEvent is emitted once per proposal when it reaches its terminal state
type ProposalExecutedEvent struct {
	ProposalID uint64         `json:"proposalId"`
	Executor   common.Address `json:"executor"`
	Purchased  bool           `json:"purchased"`
	ItemID     uint64         `json:"nftTokenId"`
	Price      *big.Int       `json:"price,omitempty"`
}

func (ProposalExecutedEvent) EventName() EventType {
	return EventTypeProposalExecuted
}

func (e ProposalExecutedEvent) String() string {
	if !e.Purchased {
		return fmt.Sprintf("%s: id=%d, by=%s, no purchase", e.EventName(), e.ProposalID, e.Executor.Hex())
	}
	return fmt.Sprintf("%s: id=%d, by=%s, bought item %d for %s wei",
		e.EventName(), e.ProposalID, e.Executor.Hex(), e.ItemID, e.Price)
}

// ProposalExecutionFailedEvent is emitted when the purchase is rejected
type ProposalExecutionFailedEvent struct {
	ProposalID uint64         `json:"proposalId"`
	Executor   common.Address `json:"executor"`
	Reason     string         `json:"reason"`
}

func (ProposalExecutionFailedEvent) EventName() EventType {
	return EventTypeProposalExecutionFailed
}

func (e ProposalExecutionFailedEvent) String() string {
	return fmt.Sprintf("%s: id=%d, by=%s, reason=%s", e.EventName(), e.ProposalID, e.Executor.Hex(), e.Reason)
}

// TreasuryFundedEvent is emitted when funds are deposited into the treasury
type TreasuryFundedEvent struct {
	From    common.Address `json:"from"`
	Amount  *big.Int       `json:"amount"`
	Balance *big.Int       `json:"balance"`
}

func (TreasuryFundedEvent) EventName() EventType {
	return EventTypeTreasuryFunded
}

func (e TreasuryFundedEvent) String() string {
	return fmt.Sprintf("%s: from=%s, amount=%s, balance=%s", e.EventName(), e.From.Hex(), e.Amount, e.Balance)
}
