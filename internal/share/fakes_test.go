package share

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errBackend = errors.New("backend unavailable")

// memStore is an in-memory Store for tests.
type memStore struct {
	mu      sync.Mutex
	records map[string]Record
	puts    int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]Record{}}
}

func (s *memStore) Put(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.Code] = *r
	s.puts++
	return nil
}

func (s *memStore) Get(_ context.Context, code string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memStore) Exists(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[code]
	return ok, nil
}

func (s *memStore) ScanAll(_ context.Context) ([]map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []map[string]string
	for _, r := range s.records {
		out = append(out, r.Attributes())
	}
	return out, nil
}

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Put(context.Context, *Record) error { return errBackend }
func (failingStore) Get(context.Context, string) (*Record, error) {
	return nil, errBackend
}
func (failingStore) Exists(context.Context, string) (bool, error) { return false, errBackend }
func (failingStore) ScanAll(context.Context) ([]map[string]string, error) {
	return nil, errBackend
}

// fakeSigner returns deterministic URLs and records what it signed.
type fakeSigner struct {
	err       error
	uploads   []string
	downloads []string
	lastTTL   time.Duration
}

func (s *fakeSigner) SignUpload(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, key)
	s.lastTTL = ttl
	return "https://objects.test/put/" + key, nil
}

func (s *fakeSigner) SignDownload(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.downloads = append(s.downloads, key)
	s.lastTTL = ttl
	return "https://objects.test/get/" + key, nil
}

// seqGenerator hands out codes in order, repeating the last one.
type seqGenerator struct {
	codes []string
	calls int
}

func (g *seqGenerator) Next() string {
	i := g.calls
	if i >= len(g.codes) {
		i = len(g.codes) - 1
	}
	g.calls++
	return g.codes[i]
}

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Set(s string) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	c.t = t
}

const testSecret = "test-intent-secret"

type fixture struct {
	store    Store
	signer   *fakeSigner
	codes    *seqGenerator
	clock    *testClock
	intents  *IntentSigner
	issuer   *Issuer
	registry *Registry
}

func newFixture(store Store, codes ...string) *fixture {
	if len(codes) == 0 {
		codes = []string{"a1b2c3"}
	}
	f := &fixture{
		store:  store,
		signer: &fakeSigner{},
		codes:  &seqGenerator{codes: codes},
		clock:  &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	f.intents = NewIntentSigner(testSecret, time.Hour)
	f.intents.now = f.clock.Now
	f.issuer = NewIssuer(store, f.signer, f.codes, f.intents, 15*time.Minute)
	f.issuer.now = f.clock.Now
	f.registry = NewRegistry(store, f.signer, f.intents, 60*time.Minute, 15*time.Minute)
	f.registry.now = f.clock.Now
	return f
}
