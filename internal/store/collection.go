package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/timecodec"
)

// Doc constrains a collection's element type to pointers exposing the
// shared document metadata.
type Doc[T any] interface {
	*T
	DocMeta() *models.Meta
}

// Collection provides owner-scoped CRUD and live subscriptions over one
// Firestore collection. Every read filters on userId; no query ever
// crosses owners. Ordering is applied client-side after fetch: combining
// the owner filter with a server-side sort would require a composite
// index per collection, and the canonical order is part of this service's
// contract regardless of what the store could be configured to do.
type Collection[T any, P Doc[T]] struct {
	client *firestore.Client
	name   string
	less   func(a, b T) bool
	log    *zap.Logger
}

// NewCollection builds a collection service. less defines the canonical
// order; nil keeps store order.
func NewCollection[T any, P Doc[T]](client *firestore.Client, name string, less func(a, b T) bool, log *zap.Logger) *Collection[T, P] {
	return &Collection[T, P]{
		client: client,
		name:   name,
		less:   less,
		log:    log.Named(name),
	}
}

func (c *Collection[T, P]) col() *firestore.CollectionRef {
	return c.client.Collection(c.name)
}

func (c *Collection[T, P]) ownerQuery(ownerID string) firestore.Query {
	return c.col().Where("userId", "==", ownerID)
}

// GetAll fetches every document owned by ownerID in canonical order.
func (c *Collection[T, P]) GetAll(ctx context.Context, ownerID string) ([]T, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}
	iter := c.ownerQuery(ownerID).Documents(ctx)
	defer iter.Stop()

	items, err := c.decodeAll(iter)
	if err != nil {
		return nil, Classify(c.name+".getAll", err)
	}
	c.sortItems(items)
	return items, nil
}

// GetByID fetches a single document. A missing document is reported as
// (nil, nil), not as an error.
func (c *Collection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%s.getById: id cannot be empty", c.name)
	}
	snap, err := c.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, Classify(c.name+".getById", err)
	}

	var item T
	p := P(&item)
	if err := snap.DataTo(p); err != nil {
		return nil, fmt.Errorf("failed to decode %s document '%s': %w", c.name, id, err)
	}
	p.DocMeta().ID = snap.Ref.ID
	return &item, nil
}

// Add persists doc under ownerID and returns the store-assigned id. Any
// id already set on doc is discarded; createdAt and updatedAt are stamped
// server-side.
func (c *Collection[T, P]) Add(ctx context.Context, ownerID string, doc P) (string, error) {
	if ownerID == "" {
		return "", ErrNotAuthenticated
	}
	meta := doc.DocMeta()
	meta.ID = ""
	meta.UserID = ownerID

	ref := c.col().NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return "", Classify(c.name+".add", err)
	}
	meta.ID = ref.ID
	return ref.ID, nil
}

// Update applies patch to the document as a partial update: fields absent
// from patch keep their prior values. Date values in patch may arrive in
// the store's pair encoding and are normalized first. updatedAt is
// refreshed server-side; id, userId and createdAt are immutable and
// silently dropped from the patch. A missing document is an error.
func (c *Collection[T, P]) Update(ctx context.Context, id string, patch map[string]any) error {
	if id == "" {
		return fmt.Errorf("%s.update: id cannot be empty", c.name)
	}
	normalized := timecodec.FromStore(patch)

	updates := make([]firestore.Update, 0, len(normalized)+1)
	for field, value := range normalized {
		switch field {
		case "id", "userId", "createdAt", "updatedAt":
			continue
		}
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	if _, err := c.col().Doc(id).Update(ctx, updates); err != nil {
		return Classify(c.name+".update", err)
	}
	return nil
}

// Delete removes the document permanently. Deleting a document that does
// not exist is treated as success: Firestore's delete is a no-op for
// absent documents and surfacing that as an error would force a read
// before every delete.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%s.delete: id cannot be empty", c.name)
	}
	if _, err := c.col().Doc(id).Delete(ctx); err != nil {
		return Classify(c.name+".delete", err)
	}
	return nil
}

// Subscribe establishes a live feed of ownerID's documents. Every remote
// change delivers the complete, freshly sorted list to onChange as a full
// replacement, never a delta, so consumers can swap state wholesale.
// On a sustained failure onError fires exactly once and the feed stops.
// The returned function stops the feed; it is idempotent and guarantees
// no callback runs after it returns.
func (c *Collection[T, P]) Subscribe(ctx context.Context, ownerID string, onChange func([]T), onError func(error)) (func(), error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}
	sctx, cancel := context.WithCancel(ctx)
	snaps := c.ownerQuery(ownerID).Snapshots(sctx)
	sub := &subscription{cancel: cancel}

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if sctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				sub.fail(func() { onError(Classify(c.name+".subscribe", err)) })
				return
			}
			items, err := c.decodeAll(snap.Documents)
			if err != nil {
				sub.fail(func() { onError(Classify(c.name+".subscribe", err)) })
				return
			}
			c.sortItems(items)
			sub.deliver(func() { onChange(items) })
		}
	}()

	return sub.stop, nil
}

func (c *Collection[T, P]) decodeAll(iter *firestore.DocumentIterator) ([]T, error) {
	var items []T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var item T
		p := P(&item)
		if err := doc.DataTo(p); err != nil {
			c.log.Warn("skipping undecodable document",
				zap.String("id", doc.Ref.ID), zap.Error(err))
			continue
		}
		p.DocMeta().ID = doc.Ref.ID
		items = append(items, item)
	}
	return items, nil
}

func (c *Collection[T, P]) sortItems(items []T) {
	if c.less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return c.less(items[i], items[j]) })
}

// subscription serializes snapshot delivery against teardown. deliver and
// fail run callbacks under the same mutex stop acquires, so once stop
// returns no callback can be in flight or start later.
type subscription struct {
	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
}

func (s *subscription) deliver(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	fn()
}

// fail runs fn at most once and permanently stops the feed.
func (s *subscription) fail(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	fn()
}

func (s *subscription) stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
}
