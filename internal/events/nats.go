// Package events broadcasts committed bids on NATS so that displays in
// the mosque hall can update without polling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

// SubjectPrefix is prepended to the auction id to form the subject of
// every bid event; subscribe to SubjectPrefix+"*" for all auctions.
const SubjectPrefix = "lelang.bids."

// NATSPublisher publishes bid events with core NATS (at most once).
type NATSPublisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server at url.
func Connect(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("lelang-masjid"),
		nats.Timeout(3*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Subject returns the subject for auctionID.
func Subject(auctionID uint64) string {
	return fmt.Sprintf("%s%d", SubjectPrefix, auctionID)
}

// BidAccepted publishes ev on the auction's subject.
func (p *NATSPublisher) BidAccepted(ctx context.Context, ev model.BidEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal bid event: %w", err)
	}
	if err := p.conn.Publish(Subject(ev.AuctionID), data); err != nil {
		return fmt.Errorf("publish bid event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}
