// Package catalog keeps the in-memory product list and mirrors it to the remote document store.
package catalog

import (
	"context"

	"applestore-clone/internal/actor"
	"applestore-clone/internal/docstore"
	"applestore-clone/internal/domain"
	"go.uber.org/zap"
)

// ItemCollection is the flat collection add, update and load operate on.
const ItemCollection = "Item"

// OwnerItemCollection is the owner-scoped collection delete operates on: User/{ownerID}/Item.
func OwnerItemCollection(ownerID string) string {
	return docstore.Path("User", ownerID, ItemCollection)
}

// Store is the catalog of items for one session.
//
// The item list and the subscriber set are only touched on the store's loop goroutine.
// Remote calls run on the caller's goroutine, so a slow write never blocks readers.
// Mutations are optimistic or fire-and-forget exactly as each method documents; there is no
// rollback and no retry.
type Store struct {
	docs   docstore.Store
	logger *zap.Logger
	loop   *actor.Loop

	items   []domain.Item
	subs    map[int]chan []domain.Item
	nextSub int
}

// New starts a Store backed by docs. Call Close when the session ends.
func New(docs docstore.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		docs:   docs,
		logger: logger,
		loop:   actor.Start(),
		items:  []domain.Item{},
		subs:   make(map[int]chan []domain.Item),
	}
}

// Close stops the store and closes every subscription channel.
func (s *Store) Close() {
	s.loop.Do(func() {
		for id, ch := range s.subs {
			close(ch)
			delete(s.subs, id)
		}
	})
	s.loop.Close()
}

// Items returns a copy of the current list.
func (s *Store) Items() []domain.Item {
	var out []domain.Item
	s.loop.Do(func() {
		out = s.snapshot()
	})
	if out == nil {
		out = []domain.Item{}
	}
	return out
}

// Subscribe returns a channel that receives the list after every mutation, starting with the
// current list. A slow reader only ever sees the latest snapshot. cancel releases the channel.
func (s *Store) Subscribe() (<-chan []domain.Item, func()) {
	ch := make(chan []domain.Item, 1)
	id := -1
	ok := s.loop.Do(func() {
		id = s.nextSub
		s.nextSub++
		s.subs[id] = ch
		ch <- s.snapshot()
	})
	if !ok {
		close(ch)
		return ch, func() {}
	}
	cancel := func() {
		s.loop.Do(func() {
			if sub, ok := s.subs[id]; ok {
				close(sub)
				delete(s.subs, id)
			}
		})
	}
	return ch, cancel
}

// Load replaces the list with the remote Item collection. On a read error the list is left as is.
func (s *Store) Load(ctx context.Context) bool {
	docs, err := s.docs.List(ctx, ItemCollection)
	if err != nil {
		s.logger.Error("catalog: load", zap.Error(err))
		return false
	}

	loaded := make([]domain.Item, 0, len(docs))
	for _, doc := range docs {
		loaded = append(loaded, itemFromDocument(doc))
	}

	if !s.mutate(func() {
		s.items = loaded
	}) {
		return false
	}
	s.logger.Info("catalog: loaded", zap.Int("count", len(loaded)))
	return true
}

// Add appends item to the list immediately, then writes it to Item/{itemId}.
// The list keeps the item even when the remote write fails.
func (s *Store) Add(ctx context.Context, item domain.Item, ownerID string) bool {
	if item.ItemID == "" {
		item.ItemID = domain.NewItemID()
	}

	if !s.mutate(func() {
		s.items = append(s.items, item)
	}) {
		s.logger.Warn("catalog: add on closed store", zap.String("item_id", item.ItemID))
		return false
	}

	s.logger.Debug("catalog: add", zap.String("owner_id", ownerID), zap.String("item_id", item.ItemID))
	if err := s.docs.Set(ctx, ItemCollection, item.ItemID, ItemFields(item)); err != nil {
		s.logger.Error("catalog: add write", zap.String("item_id", item.ItemID), zap.Error(err))
		return false
	}
	return true
}

// Update overwrites Item/{itemId} with the full field set, then copies the fields onto every
// list entry with that id. The list is updated whatever the remote outcome.
func (s *Store) Update(ctx context.Context, item domain.Item) bool {
	written := true
	if err := s.docs.Set(ctx, ItemCollection, item.ItemID, ItemFields(item)); err != nil {
		s.logger.Error("catalog: update write", zap.String("item_id", item.ItemID), zap.Error(err))
		written = false
	}

	matched := 0
	applied := s.mutate(func() {
		for i := range s.items {
			if s.items[i].ItemID == item.ItemID {
				s.items[i].ApplyFrom(item)
				matched++
			}
		}
	})
	s.logger.Debug("catalog: update", zap.String("item_id", item.ItemID), zap.Int("matched", matched))
	return written && applied
}

// Delete removes User/{ownerID}/Item/{itemId} and, once that succeeds, the first list entry
// with that id.
func (s *Store) Delete(ctx context.Context, item domain.Item, ownerID string) bool {
	if err := s.docs.Delete(ctx, OwnerItemCollection(ownerID), item.ItemID); err != nil {
		s.logger.Error("catalog: delete", zap.String("owner_id", ownerID), zap.String("item_id", item.ItemID), zap.Error(err))
		return false
	}

	return s.mutate(func() {
		for i := range s.items {
			if s.items[i].ItemID == item.ItemID {
				s.items = append(s.items[:i:i], s.items[i+1:]...)
				return
			}
		}
	})
}

// FilterByCategory replaces the list with the entries of items whose category equals category.
// The previous list is discarded.
func (s *Store) FilterByCategory(items []domain.Item, category string) {
	filtered := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			filtered = append(filtered, it)
		}
	}
	s.mutate(func() {
		s.items = filtered
	})
}

// mutate runs fn on the loop and publishes the resulting list.
// It reports false without running fn once the store is closed.
func (s *Store) mutate(fn func()) bool {
	return s.loop.Do(func() {
		fn()
		s.publish()
	})
}

func (s *Store) publish() {
	for _, ch := range s.subs {
		snap := s.snapshot()
		select {
		case ch <- snap:
			continue
		default:
		}
		// Replace the stale snapshot the reader has not taken yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) snapshot() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}
