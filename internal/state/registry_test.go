package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/skycast/internal/models"
)

type memPrefs struct {
	mu    sync.Mutex
	data  map[string]models.SessionPrefs
	saves int
	err   error
}

func (m *memPrefs) LoadPrefs(ctx context.Context, id string) (models.SessionPrefs, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.SessionPrefs{}, false, m.err
	}
	p, ok := m.data[id]
	return p, ok, nil
}

func (m *memPrefs) SavePrefs(ctx context.Context, id string, p models.SessionPrefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]models.SessionPrefs)
	}
	m.data[id] = p
	m.saves++
	return nil
}

func newTestRegistry(prefs PrefStore) *Registry {
	factory := func() *Controller {
		return NewController(&fakeWeather{}, &fakeGeocoder{}, zerolog.Nop())
	}
	return NewRegistry(factory, prefs, zerolog.Nop())
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r := newTestRegistry(nil)

	id, ctrl := r.Create()
	require.NotEmpty(t, id)

	got, ok := r.Get(context.Background(), id)
	require.True(t, ok)
	assert.Same(t, ctrl, got)

	_, ok = r.Get(context.Background(), "missing")
	assert.False(t, ok)
	_, ok = r.Get(context.Background(), "")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	r := newTestRegistry(nil)
	_, a := r.Create()
	_, b := r.Create()

	a.ToggleDarkMode()

	assert.True(t, a.Snapshot().DarkMode)
	assert.False(t, b.Snapshot().DarkMode)
}

func TestRegistry_PersistsOnlyChangedPrefs(t *testing.T) {
	prefs := &memPrefs{}
	r := newTestRegistry(prefs)
	id, ctrl := r.Create()

	ctrl.ToggleDarkMode()
	ctrl.Startup(context.Background(), fixedSource{})
	ctrl.Search(context.Background(), "Paris")

	prefs.mu.Lock()
	defer prefs.mu.Unlock()
	assert.Equal(t, models.SessionPrefs{DarkMode: true, SearchText: "Paris"}, prefs.data[id])
	assert.Equal(t, 2, prefs.saves)
}

func TestRegistry_RestoresFromStore(t *testing.T) {
	prefs := &memPrefs{data: map[string]models.SessionPrefs{
		"old-session": {DarkMode: true, SearchText: "Lisbon"},
	}}
	r := newTestRegistry(prefs)

	ctrl, ok := r.Get(context.Background(), "old-session")
	require.True(t, ok)
	s := ctrl.Snapshot()
	assert.True(t, s.DarkMode)
	assert.Equal(t, "Lisbon", s.SearchText)
	assert.True(t, s.NeedsLocation())

	again, ok := r.Get(context.Background(), "old-session")
	require.True(t, ok)
	assert.Same(t, ctrl, again)
}

func TestRegistry_StoreError(t *testing.T) {
	r := newTestRegistry(&memPrefs{err: errors.New("disk gone")})
	_, ok := r.Get(context.Background(), "whatever")
	assert.False(t, ok)
}

func TestRegistry_Sweep(t *testing.T) {
	r := newTestRegistry(nil)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	staleID, _ := r.Create()
	now = now.Add(30 * time.Minute)
	freshID, _ := r.Create()

	assert.Equal(t, 1, r.Sweep(20*time.Minute))
	_, ok := r.Get(context.Background(), staleID)
	assert.False(t, ok)
	_, ok = r.Get(context.Background(), freshID)
	assert.True(t, ok)
}

func TestRegistry_DetachedIsNotKept(t *testing.T) {
	prefs := &memPrefs{}
	r := newTestRegistry(prefs)

	ctrl := r.Detached()
	require.NotNil(t, ctrl)
	ctrl.ToggleDarkMode()

	assert.Equal(t, 0, r.Len())
	assert.Zero(t, prefs.saves)
}

func TestRegistry_RunSweeperStops(t *testing.T) {
	r := newTestRegistry(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunSweeper(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

type fixedSource struct{}

func (fixedSource) Resolve(ctx context.Context) (models.Coordinates, error) {
	return models.Coordinates{Lat: 1, Lon: 2}, nil
}
