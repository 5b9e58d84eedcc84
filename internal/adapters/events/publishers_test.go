package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

func voteEvent() domain.Event {
	return domain.NewEvent(domain.VoteCastEvent{
		ProposalID: 3,
		Voter:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Choice:     "yay",
	}, time.Unix(100, 0))
}

func TestNATSPublisher(t *testing.T) {
	conn := &recordingConn{}
	p := NewNATSPublisher(conn, "dao.events.")

	require.NoError(t, p.Publish(context.Background(), voteEvent()))
	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "dao.events.VoteCast", conn.subjects[0])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
	assert.Equal(t, "VoteCast", decoded["type"])
	assert.NotEmpty(t, decoded["id"])
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, float64(3), payload["proposalId"])
	assert.Equal(t, "yay", payload["vote"])
}

func TestNATSPublisher_DefaultSubject(t *testing.T) {
	p := NewNATSPublisher(&recordingConn{}, "")
	assert.Equal(t, config.DefaultEventsSubject+".ProposalCreated", p.Subject(domain.EventTypeProposalCreated))
}

func TestMulti_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	logPub := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))
	failing := NewNATSPublisher(&recordingConn{err: errors.New("no responders")}, "dao")

	err := Multi{logPub, failing}.Publish(context.Background(), voteEvent())
	assert.ErrorContains(t, err, "no responders")
	assert.Contains(t, buf.String(), "VoteCast")
}

func TestProvidePublisher_WithoutNATS(t *testing.T) {
	pub, cleanup, err := ProvidePublisher(&config.RuntimeConfig{}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	defer cleanup()
	assert.Len(t, pub, 1)
}
