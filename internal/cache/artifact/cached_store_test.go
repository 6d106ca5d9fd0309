package artifact

import (
	"context"
	"testing"
	"time"

	artifactrepo "flattenrepo/internal/gateway/repository/artifact"
)

type countingStore struct {
	docs map[string][]byte
	gets int
	puts int
	dels int
}

func newCountingStore() *countingStore {
	return &countingStore{docs: map[string][]byte{}}
}

func (s *countingStore) Put(_ context.Context, id string, doc []byte) error {
	s.puts++
	s.docs[id] = append([]byte(nil), doc...)
	return nil
}

func (s *countingStore) Get(_ context.Context, id string) ([]byte, error) {
	s.gets++
	doc, ok := s.docs[id]
	if !ok {
		return nil, artifactrepo.ErrNotFound
	}
	return doc, nil
}

func (s *countingStore) Delete(_ context.Context, id string) error {
	s.dels++
	delete(s.docs, id)
	return nil
}

func TestCachedStoreServesRepeatedGetsFromMemory(t *testing.T) {
	origin := newCountingStore()
	cached := NewCachedStore(origin, DefaultCacheConfig())
	ctx := context.Background()

	if err := cached.Put(ctx, "t1", []byte("<html>doc</html>")); err != nil {
		t.Fatalf("put: %v", err)
	}
	for i := 0; i < 3; i++ {
		doc, err := cached.Get(ctx, "t1")
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if string(doc) != "<html>doc</html>" {
			t.Fatalf("get %d: wrong doc %q", i, doc)
		}
	}
	if origin.gets != 0 {
		t.Fatalf("origin gets = %d, want 0 (put populates cache)", origin.gets)
	}
	m := cached.Metrics()
	if m.Hits != 3 || m.Misses != 0 {
		t.Fatalf("metrics = %+v, want 3 hits 0 misses", m)
	}
}

func TestCachedStorePopulatesOnMiss(t *testing.T) {
	origin := newCountingStore()
	origin.docs["t2"] = []byte("body")
	cached := NewCachedStore(origin, DefaultCacheConfig())
	ctx := context.Background()

	if _, err := cached.Get(ctx, "t2"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := cached.Get(ctx, "t2"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if origin.gets != 1 {
		t.Fatalf("origin gets = %d, want 1", origin.gets)
	}
}

func TestCachedStoreDeleteInvalidates(t *testing.T) {
	origin := newCountingStore()
	cached := NewCachedStore(origin, DefaultCacheConfig())
	ctx := context.Background()

	if err := cached.Put(ctx, "t3", []byte("doc")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cached.Delete(ctx, "t3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cached.Get(ctx, "t3"); err != artifactrepo.ErrNotFound {
		t.Fatalf("get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestCachedStoreExpiredEntriesRefetch(t *testing.T) {
	origin := newCountingStore()
	origin.docs["t4"] = []byte("doc")
	cached := NewCachedStore(origin, CacheConfig{TTL: time.Millisecond, MaxEntries: 8, MaxBytes: 1 << 20})
	ctx := context.Background()

	if _, err := cached.Get(ctx, "t4"); err != nil {
		t.Fatalf("get: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := cached.Get(ctx, "t4"); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if origin.gets != 2 {
		t.Fatalf("origin gets = %d, want 2", origin.gets)
	}
}
