// Package memstore is an in-memory implementation of the store contract for
// tests and local runs without a mongo deployment. Documents round-trip
// through the BSON codec on every read and write, so tag handling and value
// isolation match the mongo-backed store.
package memstore

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/store"
)

// MemStore holds every collection in process memory.
type MemStore struct {
	mu    sync.Mutex
	colls map[string]*collection
	ops   atomic.Int64
}

// New returns an empty store with the users email unique constraint in
// place, mirroring MongoStore.EnsureIndexes.
func New() *MemStore {
	s := &MemStore{colls: make(map[string]*collection)}
	s.coll(store.Users).unique = []string{"email"}
	return s
}

// Ops reports the total number of collection operations served. Tests use it
// to prove that rejected requests never reach the store.
func (s *MemStore) Ops() int64 {
	return s.ops.Load()
}

func (s *MemStore) C(name string) store.Collection {
	return s.coll(name)
}

func (s *MemStore) coll(name string) *collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.colls[name]
	if !ok {
		c = &collection{
			store: s,
			docs:  make(map[string]bson.Raw),
		}
		s.colls[name] = c
	}
	return c
}

type collection struct {
	store  *MemStore
	mu     sync.RWMutex
	docs   map[string]bson.Raw
	order  []string // insertion order of ids, for deterministic listing
	unique []string
}

func (c *collection) FindAll(ctx context.Context, results any) error {
	c.store.ops.Add(1)
	c.mu.RLock()
	defer c.mu.RUnlock()

	slicev := reflect.ValueOf(results).Elem()
	slicev.Set(reflect.MakeSlice(slicev.Type(), 0, len(c.order)))

	for _, id := range c.order {
		elem := reflect.New(slicev.Type().Elem())
		if err := bson.Unmarshal(c.docs[id], elem.Interface()); err != nil {
			return err
		}
		slicev.Set(reflect.Append(slicev, elem.Elem()))
	}
	return nil
}

func (c *collection) FindByID(ctx context.Context, id primitive.ObjectID, result any) error {
	c.store.ops.Add(1)
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, ok := c.docs[id.Hex()]
	if !ok {
		return store.ErrNoDocuments
	}
	return bson.Unmarshal(raw, result)
}

func (c *collection) Insert(ctx context.Context, doc any) error {
	c.store.ops.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, id, err := marshalWithID(doc)
	if err != nil {
		return err
	}
	if err := c.checkUnique(raw, id); err != nil {
		return err
	}

	hex := id.Hex()
	if _, exists := c.docs[hex]; !exists {
		c.order = append(c.order, hex)
	}
	c.docs[hex] = raw
	return nil
}

func (c *collection) Replace(ctx context.Context, id primitive.ObjectID, doc any) error {
	c.store.ops.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()

	hex := id.Hex()
	if _, ok := c.docs[hex]; !ok {
		return store.ErrNoDocuments
	}

	raw, _, err := marshalWithID(doc)
	if err != nil {
		return err
	}
	if err := c.checkUnique(raw, id); err != nil {
		return err
	}

	c.docs[hex] = raw
	return nil
}

func (c *collection) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	c.store.ops.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()

	hex := id.Hex()
	if _, ok := c.docs[hex]; !ok {
		return nil
	}
	delete(c.docs, hex)
	for i, v := range c.order {
		if v == hex {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection) DeleteAll(ctx context.Context) (int64, error) {
	c.store.ops.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()

	n := int64(len(c.docs))
	c.docs = make(map[string]bson.Raw)
	c.order = nil
	return n, nil
}

func (c *collection) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	c.store.ops.Add(1)
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.docs[id.Hex()]
	return ok, nil
}

// checkUnique enforces the collection's unique fields against every other
// document, the way a unique index would. Callers hold the write lock.
func (c *collection) checkUnique(raw bson.Raw, selfID primitive.ObjectID) error {
	for _, field := range c.unique {
		val, err := raw.LookupErr(field)
		if err != nil {
			continue // field absent, nothing to collide on
		}
		for hex, other := range c.docs {
			if hex == selfID.Hex() {
				continue
			}
			otherVal, err := other.LookupErr(field)
			if err != nil {
				continue
			}
			if val.Equal(otherVal) {
				return &store.DuplicateKeyError{Field: field}
			}
		}
	}
	return nil
}

func marshalWithID(doc any) (bson.Raw, primitive.ObjectID, error) {
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	raw := bson.Raw(b)
	idVal, err := raw.LookupErr("_id")
	if err != nil {
		return nil, primitive.NilObjectID, errors.New("memstore: document has no _id")
	}
	id, ok := idVal.ObjectIDOK()
	if !ok {
		return nil, primitive.NilObjectID, errors.New("memstore: _id is not an ObjectID")
	}
	return raw, id, nil
}
