package model

import "time"

// Bid is a single accepted offer against an auction item.  Bids are only
// ever created by the bid arbiter and are never updated or deleted.
//
// Fields:
//  ID         – opaque identifier (uuid).
//  AuctionID  – owning auction.
//  Amount     – offered amount in minor currency units.
//  BidderName – display name supplied by the bidder.
//  Contact    – optional phone number (digits only).
//  Sequence   – 1-based acceptance order within the auction.
//  AcceptedAt – server time of acceptance.
type Bid struct {
    ID         string    `json:"id"`
    AuctionID  uint64    `json:"auction_id"`
    Amount     int64     `json:"amount"`
    BidderName string    `json:"bidder_name"`
    Contact    string    `json:"contact,omitempty"`
    Sequence   int       `json:"sequence"`
    AcceptedAt time.Time `json:"accepted_at"`
}

// BidEvent is published after a bid has been committed.  Consumers may
// use it for archival or analytics; delivery is best effort.
type BidEvent struct {
    EventID     string    `json:"event_id"`
    AuctionID   uint64    `json:"auction_id"`
    BidID       string    `json:"bid_id"`
    BidderName  string    `json:"bidder_name"`
    Amount      int64     `json:"amount"`
    PreviousBid *int64    `json:"previous_bid"`
    Sequence    int       `json:"sequence"`
    Deadline    time.Time `json:"deadline"`
    Extended    bool      `json:"extended"`
    Timestamp   time.Time `json:"timestamp"`
}
