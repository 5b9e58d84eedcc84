package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// Color styles for proposal output
var (
	openStyle          = color.New(color.FgYellow)
	closedStyle        = color.New(color.FgCyan)
	executedStyle      = color.New(color.FgGreen)
	yayStyle           = color.New(color.FgGreen)
	nayStyle           = color.New(color.FgRed)
	timestampStyle     = color.New(color.Faint)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle         = color.New(color.Faint)
)

// ProposalsRenderer renders proposals as tables and detail views
type ProposalsRenderer struct {
	out   io.Writer
	color bool
	now   time.Time
}

// NewProposalsRenderer creates a new proposals renderer. now is used for remaining time.
func NewProposalsRenderer(out io.Writer, color bool, now time.Time) *ProposalsRenderer {
	return &ProposalsRenderer{out: out, color: color, now: now}
}

func (r *ProposalsRenderer) paint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

func (r *ProposalsRenderer) state(state models.ProposalState) string {
	label := StateLabel(string(state))
	switch state {
	case models.ProposalStateOpen:
		return r.paint(openStyle, label)
	case models.ProposalStateClosed:
		return r.paint(closedStyle, label)
	default:
		return r.paint(executedStyle, label)
	}
}

// RenderList renders proposals as a table in the order given
func (r *ProposalsRenderer) RenderList(views []*models.ProposalView) error {
	if len(views) == 0 {
		fmt.Fprintln(r.out, "No proposals found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		MiddleHorizontal: "─",
		PaddingRight:     "   ",
	}
	t.AppendHeader(table.Row{"ID", "ITEM", "STATE", "YAY", "NAY", "DEADLINE"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, v := range views {
		t.AppendRow(table.Row{
			v.ID,
			v.ItemID,
			r.state(v.State),
			r.paint(yayStyle, strconv.FormatUint(v.YayVotes, 10)),
			r.paint(nayStyle, strconv.FormatUint(v.NayVotes, 10)),
			r.paint(timestampStyle, FormatRemaining(v.Deadline, r.now)),
		})
	}
	t.Render()
	fmt.Fprintf(r.out, "\n%d proposal(s)\n", len(views))
	return nil
}

// Render renders a single proposal
func (r *ProposalsRenderer) Render(v *models.ProposalView) error {
	fmt.Fprintf(r.out, "%s %s\n", r.paint(sectionHeaderStyle, fmt.Sprintf("Proposal #%d", v.ID)), r.state(v.State))
	r.field("Item", strconv.FormatUint(v.ItemID, 10))
	r.field("Deadline", fmt.Sprintf("%s (%s)", v.Deadline.UTC().Format(time.RFC3339), FormatRemaining(v.Deadline, r.now)))
	r.field("Yay", r.paint(yayStyle, strconv.FormatUint(v.YayVotes, 10)))
	r.field("Nay", r.paint(nayStyle, strconv.FormatUint(v.NayVotes, 10)))
	r.field("Executed", strconv.FormatBool(v.Executed))
	return nil
}

// RenderExecution renders the outcome of executing a proposal
func (r *ProposalsRenderer) RenderExecution(result *usecase.ExecuteProposalResult) error {
	if result.Purchased {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proposal #%d executed: bought item %d for %s",
			result.Proposal.ID, result.ItemID, FormatWei(result.Price))))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proposal #%d executed: vote did not pass, nothing bought",
			result.Proposal.ID)))
	}
	return r.Render(result.Proposal)
}

// RenderVote renders the tallies after a vote
func (r *ProposalsRenderer) RenderVote(choice models.VoteChoice, v *models.ProposalView) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Voted %s on proposal #%d", choice, v.ID)))
	return r.Render(v)
}

func (r *ProposalsRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", r.paint(labelStyle, fmt.Sprintf("%-11s", label+":")), value)
}
