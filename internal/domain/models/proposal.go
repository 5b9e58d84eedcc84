package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
)

// VoteChoice is the value passed to voteOnProposal: 0 = Yay, 1 = Nay
type VoteChoice uint8

const (
	VoteYay VoteChoice = 0
	VoteNay VoteChoice = 1
)

func (c VoteChoice) String() string {
	switch c {
	case VoteYay:
		return "yay"
	case VoteNay:
		return "nay"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Valid reports whether c is Yay or Nay
func (c VoteChoice) Valid() bool {
	return c == VoteYay || c == VoteNay
}

// ParseVoteChoice accepts yay/nay, yes/no and the numeric contract encoding 0/1
func ParseVoteChoice(s string) (VoteChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yay", "yes", "y", "0":
		return VoteYay, nil
	case "nay", "no", "n", "1":
		return VoteNay, nil
	default:
		return 0, fmt.Errorf("unknown vote %q (expected yay|nay|0|1)", s)
	}
}

// ProposalState is the derived lifecycle state of a proposal
type ProposalState string

const (
	ProposalStateOpen     ProposalState = "open"
	ProposalStateClosed   ProposalState = "closed"
	ProposalStateExecuted ProposalState = "executed"
)

// Proposal is the store-owned record of a single governance item
type Proposal struct {
	// Identification
	ID     uint64 `json:"id"`
	ItemID uint64 `json:"nftTokenId"`

	// Voting window
	Proposer  common.Address `json:"proposer"`
	CreatedAt time.Time      `json:"createdAt"`
	Deadline  time.Time      `json:"deadline"`

	// Tallies
	YayVotes uint64                        `json:"yayVotes"`
	NayVotes uint64                        `json:"nayVotes"`
	Voters   map[common.Address]VoteChoice `json:"voters"`

	// Execution details
	Executed   bool       `json:"executed"`
	ExecutedAt *time.Time `json:"executedAt,omitempty"`
	Purchased  bool       `json:"purchased"`
}

// StateAt derives the lifecycle state at the given instant
func (p *Proposal) StateAt(now time.Time) ProposalState {
	switch {
	case p.Executed:
		return ProposalStateExecuted
	case now.Before(p.Deadline):
		return ProposalStateOpen
	default:
		return ProposalStateClosed
	}
}

// HasVoted reports whether voter already cast a vote
func (p *Proposal) HasVoted(voter common.Address) bool {
	_, ok := p.Voters[voter]
	return ok
}

// Passed reports whether execution would trigger a purchase
func (p *Proposal) Passed() bool {
	return p.YayVotes > p.NayVotes
}

// Clone returns a deep copy that callers may keep without aliasing store state
func (p *Proposal) Clone() *Proposal {
	cp := *p
	cp.Voters = make(map[common.Address]VoteChoice, len(p.Voters))
	for voter, choice := range p.Voters {
		cp.Voters[voter] = choice
	}
	if p.ExecutedAt != nil {
		at := *p.ExecutedAt
		cp.ExecutedAt = &at
	}
	return &cp
}

// View projects the proposal onto the fields exposed by proposals(id)
func (p *Proposal) View(now time.Time) *ProposalView {
	return &ProposalView{
		ID:           p.ID,
		ItemID:       p.ItemID,
		Deadline:     p.Deadline,
		DeadlineUnix: p.Deadline.Unix(),
		YayVotes:     p.YayVotes,
		NayVotes:     p.NayVotes,
		Executed:     p.Executed,
		State:        p.StateAt(now),
	}
}

// ProposalView is the read-only projection returned to callers
type ProposalView struct {
	ID       uint64    `json:"proposalId" yaml:"proposalId"`
	ItemID   uint64    `json:"nftTokenId" yaml:"nftTokenId"`
	Deadline time.Time `json:"-" yaml:"-"`
	// DeadlineUnix mirrors the contract's deadline field (unix seconds)
	DeadlineUnix int64         `json:"deadline" yaml:"deadline"`
	YayVotes     uint64        `json:"yayVotes" yaml:"yayVotes"`
	NayVotes     uint64        `json:"nayVotes" yaml:"nayVotes"`
	Executed     bool          `json:"executed" yaml:"executed"`
	State        ProposalState `json:"state" yaml:"state"`
}

// RecordVote applies one vote to the tallies, enforcing the voting rules at now
func (p *Proposal) RecordVote(voter common.Address, choice VoteChoice, now time.Time) error {
	if !choice.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidChoice, choice)
	}
	if !now.Before(p.Deadline) {
		return domain.ErrVotingClosed
	}
	if p.Executed {
		return domain.ErrAlreadyExecuted
	}
	if p.HasVoted(voter) {
		return domain.ErrAlreadyVoted
	}
	if p.Voters == nil {
		p.Voters = make(map[common.Address]VoteChoice)
	}
	p.Voters[voter] = choice
	if choice == VoteYay {
		p.YayVotes++
	} else {
		p.NayVotes++
	}
	return nil
}

// MarkExecuted moves the proposal into its terminal state
func (p *Proposal) MarkExecuted(at time.Time, purchased bool) error {
	if p.Executed {
		return domain.ErrAlreadyExecuted
	}
	p.Executed = true
	p.ExecutedAt = &at
	p.Purchased = purchased
	return nil
}

// CheckTransition verifies that next is a legal successor of prev
func CheckTransition(prev, next *Proposal) error {
	switch {
	case next.ID != prev.ID:
		return fmt.Errorf("proposal %d: id is immutable", prev.ID)
	case next.ItemID != prev.ItemID:
		return fmt.Errorf("proposal %d: item is immutable", prev.ID)
	case !next.Deadline.Equal(prev.Deadline):
		return fmt.Errorf("proposal %d: deadline is immutable", prev.ID)
	case prev.Executed && !next.Executed:
		return fmt.Errorf("proposal %d: executed flag cannot be reset", prev.ID)
	case next.YayVotes < prev.YayVotes || next.NayVotes < prev.NayVotes:
		return fmt.Errorf("proposal %d: vote counters cannot decrease", prev.ID)
	case prev.Executed && (next.YayVotes != prev.YayVotes || next.NayVotes != prev.NayVotes):
		return fmt.Errorf("proposal %d: tallies are frozen after execution", prev.ID)
	case next.YayVotes+next.NayVotes != uint64(len(next.Voters)):
		return fmt.Errorf("proposal %d: tallies do not match voters", prev.ID)
	}
	for voter, choice := range prev.Voters {
		if got, ok := next.Voters[voter]; !ok || got != choice {
			return fmt.Errorf("proposal %d: recorded vote of %s cannot change", prev.ID, voter.Hex())
		}
	}
	return nil
}
