package model

import "time"

// State is the lifecycle state of an auction item.
type State string

const (
    StateDraft     State = "DRAFT"
    StateActive    State = "ACTIVE"
    StateCompleted State = "COMPLETED"
    StateCancelled State = "CANCELLED"
)

// Terminal reports whether no further transition may leave s.
func (s State) Terminal() bool { return s == StateCompleted || s == StateCancelled }

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
    switch s {
    case StateDraft, StateActive, StateCompleted, StateCancelled:
        return true
    }
    return false
}

// Condition tags the physical condition of a donated item.
type Condition string

const (
    ConditionNew         Condition = "new"
    ConditionUsedGood    Condition = "used_good"
    ConditionUsedDamaged Condition = "used_damaged"
)

// Valid reports whether c is one of the known condition tags.
func (c Condition) Valid() bool {
    switch c {
    case ConditionNew, ConditionUsedGood, ConditionUsedDamaged:
        return true
    }
    return false
}

// AuctionItem represents an item offered in a lelang.  Items are created
// in DRAFT by an organizer, opened for bidding by start and closed by
// finish or cancel.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – short title shown in listings.
//  Description   – free text description.
//  Condition     – new / used_good / used_damaged.
//  ImageRef      – opaque reference issued by the image storage service.
//  StartingPrice – opening price in minor currency units; always > 0.
//  HighestBid    – highest accepted bid; nil until the first bid.
//  FinalPrice    – sale price recorded on completion; nil means no sale.
//  DurationHours – declared bidding duration.
//  StartedAt     – when the auction was started (zero while DRAFT).
//  Deadline      – effective deadline; moves forward on late bids.
//  State         – DRAFT, ACTIVE, COMPLETED or CANCELLED.
//  BidCount      – number of accepted bids.
//  LeadingBidder – display name of the current highest bidder.
//  Winner        – leading bidder at completion.
//  CancelReason  – organizer supplied reason for cancellation.
//  CreatedBy     – subject of the organizer who created the item.
type AuctionItem struct {
    ID            uint64     `json:"id"`
    Name          string     `json:"name"`
    Description   string     `json:"description"`
    Condition     Condition  `json:"condition"`
    ImageRef      string     `json:"image_ref,omitempty"`
    StartingPrice int64      `json:"starting_price"`
    HighestBid    *int64     `json:"highest_bid"`
    FinalPrice    *int64     `json:"final_price"`
    DurationHours int        `json:"duration_hours"`
    StartedAt     time.Time  `json:"started_at"`
    Deadline      time.Time  `json:"deadline"`
    State         State      `json:"state"`
    BidCount      int        `json:"bid_count"`
    LeadingBidder string     `json:"leading_bidder,omitempty"`
    Winner        string     `json:"winner,omitempty"`
    CancelReason  string     `json:"cancel_reason,omitempty"`
    CreatedBy     string     `json:"created_by,omitempty"`
    CreatedAt     time.Time  `json:"created_at"`
    UpdatedAt     time.Time  `json:"updated_at"`
    FinishedAt    *time.Time `json:"finished_at,omitempty"`
    CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// Duration returns the declared bidding duration.
func (a *AuctionItem) Duration() time.Duration {
    return time.Duration(a.DurationHours) * time.Hour
}

// ReferencePrice is the price a new bid is measured against: the highest
// accepted bid, or the starting price before any bid exists.
func (a *AuctionItem) ReferencePrice() int64 {
    if a.HighestBid != nil && *a.HighestBid > a.StartingPrice {
        return *a.HighestBid
    }
    return a.StartingPrice
}
