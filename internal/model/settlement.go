package model

import "time"

// Settlement is the fact handed to the ledger (kas) when an auction
// completes with a sale.  The auction engine does not wait for the ledger
// to acknowledge it.
type Settlement struct {
    EventID    string    `json:"event_id"`
    AuctionID  uint64    `json:"auction_id"`
    ItemName   string    `json:"item_name"`
    Amount     int64     `json:"amount"`
    WinnerName string    `json:"winner_name"`
    Timestamp  time.Time `json:"timestamp"`
}
