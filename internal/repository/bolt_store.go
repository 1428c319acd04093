package repository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/iliyamo/lelang-masjid/internal/lelang"
	"github.com/iliyamo/lelang-masjid/internal/model"
)

var (
	bucketAuctions = []byte("lelang_items")
	bucketBids     = []byte("lelang_bids") // one nested bucket per auction, keyed by sequence
)

// BoltStore implements lelang.Store on BoltDB.  Auctions and their bid
// ledger live in a single file.  It serves single-node deployments
// (STORE_DRIVER=bolt) and the test suites.  Bolt allows one read-write
// transaction at a time, so every Mutate call is fully serialised and
// item and bid are committed together.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path and makes sure the
// top level buckets exist.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAuctions); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketBids)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error { return s.db.Close() }

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// CreateItem assigns the next id from the bucket sequence and stores item.
func (s *BoltStore) CreateItem(_ context.Context, item *model.AuctionItem) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuctions)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		item.ID = id
		return putItem(b, item)
	})
}

// GetItem loads a single item.
func (s *BoltStore) GetItem(_ context.Context, id uint64) (*model.AuctionItem, error) {
	var item *model.AuctionItem
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		item, err = getItem(tx.Bucket(bucketAuctions), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns items in state (all items when state is empty) in id
// order.
func (s *BoltStore) ListItems(_ context.Context, state model.State) ([]model.AuctionItem, error) {
	items := []model.AuctionItem{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuctions).ForEach(func(_, v []byte) error {
			var it model.AuctionItem
			if err := json.Unmarshal(v, &it); err != nil {
				return err
			}
			if state == "" || it.State == state {
				items = append(items, it)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListBids returns the bid ledger of an auction in sequence order.  Keys
// are big-endian sequence numbers so cursor order is sequence order.
func (s *BoltStore) ListBids(_ context.Context, auctionID uint64) ([]model.Bid, error) {
	bids := []model.Bid{}
	err := s.db.View(func(tx *bolt.Tx) error {
		if _, err := getItem(tx.Bucket(bucketAuctions), auctionID); err != nil {
			return err
		}
		ledger := tx.Bucket(bucketBids).Bucket(itob(auctionID))
		if ledger == nil {
			return nil
		}
		return ledger.ForEach(func(_, v []byte) error {
			var b model.Bid
			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}
			bids = append(bids, b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// Mutate runs fn inside a read-write transaction.  Any error from fn,
// including lelang.ErrNoChange, rolls the transaction back and is
// returned unchanged.
func (s *BoltStore) Mutate(_ context.Context, id uint64, fn lelang.MutateFunc) (*model.AuctionItem, error) {
	var item *model.AuctionItem
	err := s.db.Update(func(tx *bolt.Tx) error {
		items := tx.Bucket(bucketAuctions)
		var err error
		item, err = getItem(items, id)
		if err != nil {
			return err
		}
		bid, err := fn(item)
		if err != nil {
			return err
		}
		if bid != nil {
			ledger, err := tx.Bucket(bucketBids).CreateBucketIfNotExists(itob(id))
			if err != nil {
				return err
			}
			key := itob(uint64(bid.Sequence))
			if ledger.Get(key) != nil {
				return fmt.Errorf("bid sequence %d already recorded for auction %d", bid.Sequence, id)
			}
			data, err := json.Marshal(bid)
			if err != nil {
				return err
			}
			if err := ledger.Put(key, data); err != nil {
				return err
			}
		}
		return putItem(items, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func getItem(b *bolt.Bucket, id uint64) (*model.AuctionItem, error) {
	v := b.Get(itob(id))
	if v == nil {
		return nil, lelang.ErrAuctionNotFound
	}
	var item model.AuctionItem
	if err := json.Unmarshal(v, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func putItem(b *bolt.Bucket, item *model.AuctionItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return b.Put(itob(item.ID), data)
}
