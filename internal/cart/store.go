package cart

import (
	"context"

	"amalkitchen-be/internal/logger"

	"go.uber.org/zap"
)

// Storage persists cart snapshots between requests. A load failure caused
// by a corrupt snapshot must be reported as ErrCorruptSnapshot so the
// store can silently reset instead of surfacing an error to the shopper.
type Storage interface {
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Save(ctx context.Context, sessionID string, snap *Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// Store holds the working set of items a shopper intends to buy. Every
// mutation writes the full snapshot back through Storage.
type Store struct {
	sessionID      string
	storage        Storage
	items          []Item
	selectedRegion string
}

// NewStore loads the persisted snapshot for the session. A corrupt
// snapshot resets the cart to empty without error.
func NewStore(ctx context.Context, storage Storage, sessionID string) (*Store, error) {
	s := &Store{sessionID: sessionID, storage: storage}

	snap, err := storage.Load(ctx, sessionID)
	if err != nil {
		if err == ErrCorruptSnapshot {
			logger.FromCtx(ctx).Warn("discarding corrupt cart snapshot",
				zap.String("session_id", sessionID),
			)
			_ = storage.Delete(ctx, sessionID)
			return s, nil
		}
		return nil, err
	}
	if snap != nil {
		s.items = snap.Items
		s.selectedRegion = snap.SelectedRegion
	}
	return s, nil
}

// Add merges one unit of the item into the cart. An existing line for the
// same product ID gains quantity 1; any quantity on the incoming item is
// ignored. Always succeeds locally; persistence errors are returned.
func (s *Store) Add(ctx context.Context, item Item) error {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			return s.persist(ctx)
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	return s.persist(ctx)
}

// Remove deletes the line entirely regardless of quantity. No-op when the
// ID is absent.
func (s *Store) Remove(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets the line's quantity to exactly qty. A qty of zero or
// less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, id)
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = qty
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the store and erases the persisted snapshot. The selected
// region side channel survives a clear.
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	if s.selectedRegion == "" {
		return s.storage.Delete(ctx, s.sessionID)
	}
	return s.persist(ctx)
}

// SetSelectedRegion records the last region the shopper browsed in. It is
// not a per-item value and persists independently of the cart lines.
func (s *Store) SetSelectedRegion(ctx context.Context, region string) error {
	s.selectedRegion = region
	return s.persist(ctx)
}

func (s *Store) SelectedRegion() string {
	return s.selectedRegion
}

func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price multiplied by quantity across lines.
func (s *Store) TotalPrice() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (s *Store) persist(ctx context.Context) error {
	snap := &Snapshot{
		Items:          s.items,
		SelectedRegion: s.selectedRegion,
	}
	return s.storage.Save(ctx, s.sessionID, snap)
}
