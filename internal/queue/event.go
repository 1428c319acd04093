// Package queue carries settlements of completed auctions to the kas
// (mosque treasury) ledger over RabbitMQ.
package queue

import (
    "time"

    "github.com/iliyamo/lelang-masjid/internal/model"
)

// SettlementEvent is the message body published on the settlement queue.
// It carries everything the ledger needs to book the sale without reading
// the auction database.  EventID lets the ledger drop redeliveries.
type SettlementEvent struct {
    EventID    string `json:"event_id"`
    AuctionID  uint64 `json:"auction_id"`
    ItemName   string `json:"item_name"`
    Amount     int64  `json:"amount"`
    WinnerName string `json:"winner_name"`
    SettledAt  string `json:"settled_at"`
}

// NewSettlementEvent converts a settlement into its wire form.
func NewSettlementEvent(s model.Settlement) SettlementEvent {
    return SettlementEvent{
        EventID:    s.EventID,
        AuctionID:  s.AuctionID,
        ItemName:   s.ItemName,
        Amount:     s.Amount,
        WinnerName: s.WinnerName,
        SettledAt:  s.Timestamp.UTC().Format(time.RFC3339),
    }
}
