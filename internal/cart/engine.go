package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
	"github.com/sincrochat/catalog-backend/pkg/logger"
)

// Engine owns the line items of one shopper's cart. It merges equal
// configurations on add, keeps pricing derived fields consistent, and writes
// every items mutation through to durable storage. All mutations are
// serialized by an internal mutex, so a fingerprint lookup and the merge it
// decides are atomic even when two adds race.
//
// Storage failures never surface to callers: unreadable persisted state loads
// as an empty cart and failed writes only cost durability, not the in-memory
// session.
type Engine struct {
	mu         sync.Mutex
	items      []LineItem
	isOpen     bool
	boundToken string

	storage   Storage
	logg      *logger.Logger
	observers map[int]Observer
	nextObs   int
}

// Snapshot is the read-only view handed to observers and HTTP controllers.
type Snapshot struct {
	Items    []LineItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal int64      `json:"subtotal"`
	IsOpen   bool       `json:"is_open"`
}

// Observer receives a snapshot after every cart mutation. Observers run
// synchronously under the engine lock; mutating the cart from inside one
// deadlocks; defer re-entrant work instead.
type Observer func(Snapshot)

// AddInput carries everything AddToCart needs. The product snapshot must
// already be resolved by the catalog layer.
type AddInput struct {
	CatalogProductID string
	Product          ProductSnapshot
	Quantity         int
	Modifiers        []ModifierSelection
	Notes            string
}

func NewEngine(storage Storage, logg *logger.Logger) *Engine {
	return &Engine{
		storage:   storage,
		logg:      logg,
		observers: make(map[int]Observer),
	}
}

// InitSession binds the engine to a catalog link token. Reopening the same
// link restores the persisted cart; a different link (or none stored) wipes
// any previous cart so two sessions never leak into each other.
func (e *Engine) InitSession(ctx context.Context, token string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.boundToken = token

	stored, ok, err := e.storage.Get(ctx, tokenKey)
	if err == nil && ok && stored == token {
		e.items = e.loadItems(ctx)
		e.notifyLocked()
		return
	}
	if err != nil {
		e.warn(ctx, "cart token read failed, resetting session")
	}

	if derr := e.storage.Delete(ctx, itemsKey); derr != nil {
		e.warn(ctx, "stale cart delete failed")
	}
	if serr := e.storage.Set(ctx, tokenKey, token); serr != nil {
		e.warn(ctx, "cart token write failed")
	}
	e.items = nil
	e.notifyLocked()
}

// EnsureSession re-binds only when the token actually changed, so a storage
// outage mid-session does not clobber the in-memory cart on the next request.
func (e *Engine) EnsureSession(ctx context.Context, token string) {
	e.mu.Lock()
	bound := e.boundToken
	e.mu.Unlock()
	if bound == token {
		return
	}
	e.InitSession(ctx, token)
}

// AddToCart merges into an existing line item when the configuration
// fingerprint matches, otherwise appends a new one. Quantity must be >= 1.
func (e *Engine) AddToCart(ctx context.Context, input AddInput) error {
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	unitPrice := UnitPriceFor(input.Product, input.Modifiers)
	print := fingerprint(input.CatalogProductID, input.Modifiers, input.Notes)

	for i := range e.items {
		existing := &e.items[i]
		if fingerprint(existing.CatalogProductID, existing.Modifiers, existing.Notes) != print {
			continue
		}
		// Identical fingerprint implies identical pricing inputs; keep the
		// existing unit price.
		existing.Quantity += input.Quantity
		existing.LineTotal = existing.UnitPrice * int64(existing.Quantity)
		e.persistLocked(ctx)
		e.notifyLocked()
		return nil
	}

	e.items = append(e.items, LineItem{
		ID:               uuid.NewString(),
		CatalogProductID: input.CatalogProductID,
		Product:          input.Product,
		Quantity:         input.Quantity,
		Modifiers:        input.Modifiers,
		Notes:            input.Notes,
		UnitPrice:        unitPrice,
		LineTotal:        unitPrice * int64(input.Quantity),
	})
	e.persistLocked(ctx)
	e.notifyLocked()
	return nil
}

// UpdateQuantity sets a line item's quantity. Zero or less removes the item;
// an unknown id is a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, lineItemID string, quantity int) {
	if quantity <= 0 {
		e.Remove(ctx, lineItemID)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID != lineItemID {
			continue
		}
		e.items[i].Quantity = quantity
		e.items[i].LineTotal = e.items[i].UnitPrice * int64(quantity)
		e.persistLocked(ctx)
		e.notifyLocked()
		return
	}
}

// Remove deletes the matching line item; unknown ids are a no-op.
func (e *Engine) Remove(ctx context.Context, lineItemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID != lineItemID {
			continue
		}
		e.items = append(e.items[:i], e.items[i+1:]...)
		e.persistLocked(ctx)
		e.notifyLocked()
		return
	}
}

// Clear empties the cart and erases its durable storage.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.persistLocked(ctx)
	e.notifyLocked()
}

// ToggleOpen flips the cart drawer flag. Pure UI state: not persisted, no
// pricing effect.
func (e *Engine) ToggleOpen() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.isOpen = !e.isOpen
	e.notifyLocked()
}

// Snapshot returns a copy of the current cart state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Items returns a copy of the ordered line item list.
func (e *Engine) Items() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyItems(e.items)
}

// Count is the total quantity across all line items.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return countOf(e.items)
}

// Subtotal is the sum of line totals.
func (e *Engine) Subtotal() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return subtotalOf(e.items)
}

// Subscribe registers an observer and returns its unsubscribe func.
func (e *Engine) Subscribe(fn Observer) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, id)
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Items:    copyItems(e.items),
		Count:    countOf(e.items),
		Subtotal: subtotalOf(e.items),
		IsOpen:   e.isOpen,
	}
}

func (e *Engine) notifyLocked() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.snapshotLocked()
	for _, fn := range e.observers {
		fn(snap)
	}
}

// persistLocked writes the item list through to storage. An empty cart
// deletes the key instead of writing an empty array.
func (e *Engine) persistLocked(ctx context.Context) {
	if len(e.items) == 0 {
		if err := e.storage.Delete(ctx, itemsKey); err != nil {
			e.warn(ctx, "cart storage delete failed")
		}
		return
	}

	encoded, err := json.Marshal(e.items)
	if err != nil {
		e.warn(ctx, "cart encode failed")
		return
	}
	if err := e.storage.Set(ctx, itemsKey, string(encoded)); err != nil {
		e.warn(ctx, "cart storage write failed")
	}
}

// loadItems reads the persisted list; unreadable or corrupt state degrades to
// an empty cart.
func (e *Engine) loadItems(ctx context.Context) []LineItem {
	raw, ok, err := e.storage.Get(ctx, itemsKey)
	if err != nil || !ok {
		if err != nil {
			e.warn(ctx, "cart storage read failed")
		}
		return nil
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		e.warn(ctx, "persisted cart is corrupt, starting empty")
		return nil
	}
	return items
}

func (e *Engine) warn(ctx context.Context, msg string) {
	if e.logg != nil {
		e.logg.Warn(ctx, msg)
	}
}

func copyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func countOf(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func subtotalOf(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal
	}
	return total
}
