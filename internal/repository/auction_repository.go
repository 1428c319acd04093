package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/lelang-masjid/internal/lelang"
    "github.com/iliyamo/lelang-masjid/internal/model"
)

// AuctionRepo implements lelang.Store on MySQL.  Items live in the
// lelang_items table and the bid ledger in lelang_bids.  Every mutation
// runs in a transaction that holds the item row with SELECT ... FOR
// UPDATE, so bids from several server processes are serialised by the
// database as well.  All timestamps are stored in UTC.
type AuctionRepo struct {
    db *sql.DB
}

// NewAuctionRepo returns a new AuctionRepo bound to the given database.
func NewAuctionRepo(db *sql.DB) *AuctionRepo { return &AuctionRepo{db: db} }

// DB exposes the underlying sql.DB.
func (r *AuctionRepo) DB() *sql.DB { return r.db }

const itemColumns = `id, name, description, item_condition, image_ref, starting_price,
    highest_bid, final_price, duration_hours, started_at, deadline, state, bid_count,
    leading_bidder, winner, cancel_reason, created_by, created_at, updated_at,
    finished_at, cancelled_at`

type rowScanner interface {
    Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.AuctionItem, error) {
    var (
        it                    model.AuctionItem
        highest, final        sql.NullInt64
        startedAt, deadline   sql.NullTime
        finishedAt, cancelled sql.NullTime
    )
    err := row.Scan(
        &it.ID, &it.Name, &it.Description, &it.Condition, &it.ImageRef, &it.StartingPrice,
        &highest, &final, &it.DurationHours, &startedAt, &deadline, &it.State, &it.BidCount,
        &it.LeadingBidder, &it.Winner, &it.CancelReason, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
        &finishedAt, &cancelled,
    )
    if err != nil {
        return nil, err
    }
    if highest.Valid {
        v := highest.Int64
        it.HighestBid = &v
    }
    if final.Valid {
        v := final.Int64
        it.FinalPrice = &v
    }
    if startedAt.Valid {
        it.StartedAt = startedAt.Time.UTC()
    }
    if deadline.Valid {
        it.Deadline = deadline.Time.UTC()
    }
    if finishedAt.Valid {
        t := finishedAt.Time.UTC()
        it.FinishedAt = &t
    }
    if cancelled.Valid {
        t := cancelled.Time.UTC()
        it.CancelledAt = &t
    }
    it.CreatedAt = it.CreatedAt.UTC()
    it.UpdatedAt = it.UpdatedAt.UTC()
    return &it, nil
}

func nullInt(v *int64) sql.NullInt64 {
    if v == nil {
        return sql.NullInt64{}
    }
    return sql.NullInt64{Int64: *v, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
    if t.IsZero() {
        return sql.NullTime{}
    }
    return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
    if t == nil {
        return sql.NullTime{}
    }
    return nullTime(*t)
}

// CreateItem inserts a new item and populates its generated ID.
func (r *AuctionRepo) CreateItem(ctx context.Context, it *model.AuctionItem) error {
    const q = `INSERT INTO lelang_items (name, description, item_condition, image_ref, starting_price,
                   duration_hours, state, created_by, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, it.Name, it.Description, it.Condition, it.ImageRef, it.StartingPrice,
        it.DurationHours, it.State, it.CreatedBy, it.CreatedAt.UTC(), it.UpdatedAt.UTC())
    if err != nil {
        return fmt.Errorf("insert lelang item: %w", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    it.ID = uint64(id)
    return nil
}

// GetItem returns lelang.ErrAuctionNotFound when no row matches.
func (r *AuctionRepo) GetItem(ctx context.Context, id uint64) (*model.AuctionItem, error) {
    it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM lelang_items WHERE id = ?`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, lelang.ErrAuctionNotFound
    }
    return it, err
}

// ListItems returns items in state, or all items when state is empty,
// ordered by id.
func (r *AuctionRepo) ListItems(ctx context.Context, state model.State) ([]model.AuctionItem, error) {
    q := `SELECT ` + itemColumns + ` FROM lelang_items`
    var args []any
    if state != "" {
        q += ` WHERE state = ?`
        args = append(args, state)
    }
    q += ` ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    items := []model.AuctionItem{}
    for rows.Next() {
        it, err := scanItem(rows)
        if err != nil {
            return nil, err
        }
        items = append(items, *it)
    }
    return items, rows.Err()
}

// ListBids returns the ledger of an auction ordered by sequence.
func (r *AuctionRepo) ListBids(ctx context.Context, auctionID uint64) ([]model.Bid, error) {
    var exists uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM lelang_items WHERE id = ?`, auctionID).Scan(&exists)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, lelang.ErrAuctionNotFound
    }
    if err != nil {
        return nil, err
    }
    const q = `SELECT id, item_id, seq, amount, bidder_name, contact, accepted_at
               FROM lelang_bids WHERE item_id = ? ORDER BY seq`
    rows, err := r.db.QueryContext(ctx, q, auctionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    bids := []model.Bid{}
    for rows.Next() {
        var b model.Bid
        if err := rows.Scan(&b.ID, &b.AuctionID, &b.Sequence, &b.Amount, &b.BidderName, &b.Contact, &b.AcceptedAt); err != nil {
            return nil, err
        }
        b.AcceptedAt = b.AcceptedAt.UTC()
        bids = append(bids, b)
    }
    return bids, rows.Err()
}

// Mutate locks the item row, calls fn and writes the item and the
// optional bid back in the same transaction.  Errors from fn roll the
// transaction back and are returned unchanged.
func (r *AuctionRepo) Mutate(ctx context.Context, id uint64, fn lelang.MutateFunc) (*model.AuctionItem, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, fmt.Errorf("begin transaction: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    it, err := scanItem(tx.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM lelang_items WHERE id = ? FOR UPDATE`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, lelang.ErrAuctionNotFound
    }
    if err != nil {
        return nil, err
    }
    bid, err := fn(it)
    if err != nil {
        return nil, err
    }
    if bid != nil {
        if err := r.insertBidTx(ctx, tx, bid); err != nil {
            return nil, err
        }
    }
    if err := r.updateItemTx(ctx, tx, it); err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, fmt.Errorf("commit transaction: %w", err)
    }
    committed = true
    return it, nil
}

// insertBidTx appends to the ledger.  The unique (item_id, seq) key
// rejects a duplicate sequence number.
func (r *AuctionRepo) insertBidTx(ctx context.Context, tx *sql.Tx, b *model.Bid) error {
    const q = `INSERT INTO lelang_bids (id, item_id, seq, amount, bidder_name, contact, accepted_at)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    if _, err := tx.ExecContext(ctx, q, b.ID, b.AuctionID, b.Sequence, b.Amount, b.BidderName, b.Contact, b.AcceptedAt.UTC()); err != nil {
        return fmt.Errorf("insert bid: %w", err)
    }
    return nil
}

func (r *AuctionRepo) updateItemTx(ctx context.Context, tx *sql.Tx, it *model.AuctionItem) error {
    const q = `UPDATE lelang_items SET
                   highest_bid = ?, final_price = ?, started_at = ?, deadline = ?, state = ?,
                   bid_count = ?, leading_bidder = ?, winner = ?, cancel_reason = ?,
                   updated_at = ?, finished_at = ?, cancelled_at = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q,
        nullInt(it.HighestBid), nullInt(it.FinalPrice), nullTime(it.StartedAt), nullTime(it.Deadline), it.State,
        it.BidCount, it.LeadingBidder, it.Winner, it.CancelReason,
        it.UpdatedAt.UTC(), nullTimePtr(it.FinishedAt), nullTimePtr(it.CancelledAt),
        it.ID)
    if err != nil {
        return fmt.Errorf("update lelang item: %w", err)
    }
    return nil
}
