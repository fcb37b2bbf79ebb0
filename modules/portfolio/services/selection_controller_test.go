package services

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/pkg/logging"
)

var (
	idX = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	idY = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	idZ = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
)

type stubSelectionRepo struct {
	getAll func(ctx context.Context) ([]*property.Property, error)
}

func (s *stubSelectionRepo) GetAll(ctx context.Context) ([]*property.Property, error) {
	return s.getAll(ctx)
}

func (s *stubSelectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSelectionRepo) Create(ctx context.Context, p *property.Property) (*property.Property, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSelectionRepo) Update(ctx context.Context, p *property.Property) (*property.Property, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSelectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (s *stubSelectionRepo) EnergyReadings(ctx context.Context, propertyID uuid.UUID) ([]property.EnergyReading, error) {
	return nil, nil
}

func (s *stubSelectionRepo) RentalPayments(ctx context.Context, propertyID uuid.UUID) ([]property.RentalPayment, error) {
	return nil, nil
}

func newTestProperty(id string, sortIndex int, createdAt time.Time) *property.Property {
	return property.New(
		"property "+id[:8],
		property.WithID(uuid.MustParse(id)),
		property.WithType(property.TypeApartment),
		property.WithSortIndex(sortIndex),
		property.WithCreatedAt(createdAt),
		property.WithUpdatedAt(createdAt),
	)
}

// ordered mimics the store's deterministic ordering contract:
// sort_index ASC, created_at DESC, id ASC.
func ordered(props ...*property.Property) []*property.Property {
	sort.SliceStable(props, func(i, j int) bool {
		if props[i].SortIndex() != props[j].SortIndex() {
			return props[i].SortIndex() < props[j].SortIndex()
		}
		if !props[i].CreatedAt().Equal(props[j].CreatedAt()) {
			return props[i].CreatedAt().After(props[j].CreatedAt())
		}
		return props[i].ID().String() < props[j].ID().String()
	})
	return props
}

func fixedRepo(props []*property.Property) *stubSelectionRepo {
	return &stubSelectionRepo{
		getAll: func(ctx context.Context) ([]*property.Property, error) {
			return props, nil
		},
	}
}

func testLogger() *logrus.Logger {
	return logging.ConsoleLogger(logrus.PanicLevel)
}

func TestLoad_DefaultsSelectionToFirstByOrder(t *testing.T) {
	t.Parallel()

	now := time.Now()
	list := ordered(
		newTestProperty(idX, 2, now),
		newTestProperty(idY, 1, now),
	)
	values := url.Values{}
	c := NewSelectionController(fixedRepo(list), NewValuesMirror(values), testLogger())

	c.Load(context.Background())

	state := c.State()
	require.Equal(t, idY, state.SafeSelection)
	require.Equal(t, idY, state.RawSelection)
	require.NotNil(t, state.Selected)
	require.Equal(t, idY, state.Selected.ID().String())
	require.Equal(t, idY, values.Get("propertyId"))
	require.False(t, state.Loading)
	require.Empty(t, state.Error)
}

func TestLoad_ClearsVanishedSelection(t *testing.T) {
	t.Parallel()

	now := time.Now()
	list := ordered(
		newTestProperty(idX, 1, now),
		newTestProperty(idY, 2, now),
	)
	values := url.Values{"propertyId": []string{idZ}}
	c := NewSelectionController(fixedRepo(list), NewValuesMirror(values), testLogger())

	require.Equal(t, idZ, c.State().SafeSelection)

	c.Load(context.Background())

	state := c.State()
	require.Empty(t, state.RawSelection)
	require.Empty(t, state.SafeSelection)
	require.Nil(t, state.Selected)
	require.Empty(t, values.Get("propertyId"))
}

func TestLoad_KeepsMatchingSelection(t *testing.T) {
	t.Parallel()

	now := time.Now()
	list := ordered(
		newTestProperty(idX, 1, now),
		newTestProperty(idY, 2, now),
	)
	values := url.Values{"propertyId": []string{idY}}
	c := NewSelectionController(fixedRepo(list), NewValuesMirror(values), testLogger())

	c.Load(context.Background())

	state := c.State()
	require.Equal(t, idY, state.SafeSelection)
	require.Equal(t, idY, values.Get("propertyId"))
	require.NotNil(t, state.Selected)
}

func TestLoad_EmptyListLeavesSelectionAlone(t *testing.T) {
	t.Parallel()

	values := url.Values{"propertyId": []string{idZ}}
	c := NewSelectionController(fixedRepo(nil), NewValuesMirror(values), testLogger())

	c.Load(context.Background())

	state := c.State()
	require.Equal(t, idZ, state.SafeSelection)
	require.Nil(t, state.Selected)
	require.Equal(t, idZ, values.Get("propertyId"))
}

func TestLoad_FailureClearsListAndKeepsSelection(t *testing.T) {
	t.Parallel()

	now := time.Now()
	calls := 0
	repo := &stubSelectionRepo{
		getAll: func(ctx context.Context) ([]*property.Property, error) {
			calls++
			if calls == 1 {
				return ordered(newTestProperty(idX, 1, now), newTestProperty(idY, 2, now)), nil
			}
			return nil, errors.New("connection refused")
		},
	}
	values := url.Values{"propertyId": []string{idX}}
	c := NewSelectionController(repo, NewValuesMirror(values), testLogger())

	c.Load(context.Background())
	require.Len(t, c.State().Properties, 2)

	c.Load(context.Background())

	state := c.State()
	require.Equal(t, "connection refused", state.Error)
	require.Empty(t, state.Properties)
	require.False(t, state.Loading)
	require.Equal(t, idX, state.SafeSelection)
	require.Equal(t, idX, values.Get("propertyId"))
}

func TestLoad_LastRequestWins(t *testing.T) {
	t.Parallel()

	now := time.Now()
	listA := ordered(newTestProperty(idX, 1, now))
	listB := ordered(newTestProperty(idY, 1, now))

	var (
		mu       sync.Mutex
		calls    int
		releaseA = make(chan struct{})
		releaseB = make(chan struct{})
		startedA = make(chan struct{})
		startedB = make(chan struct{})
	)
	repo := &stubSelectionRepo{
		getAll: func(ctx context.Context) ([]*property.Property, error) {
			mu.Lock()
			calls++
			call := calls
			mu.Unlock()
			if call == 1 {
				close(startedA)
				<-releaseA
				return listA, nil
			}
			close(startedB)
			<-releaseB
			return listB, nil
		},
	}
	c := NewSelectionController(repo, NoopMirror{}, testLogger())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Load(context.Background())
	}()
	<-startedA
	go func() {
		defer wg.Done()
		c.Load(context.Background())
	}()
	<-startedB

	// B responds first, then the stale A response trickles in.
	close(releaseB)
	close(releaseA)
	wg.Wait()

	state := c.State()
	require.Len(t, state.Properties, 1)
	require.Equal(t, idY, state.Properties[0].ID().String())
	require.Equal(t, idY, state.SafeSelection)
	require.False(t, state.Loading)
	require.Empty(t, state.Error)
}

func TestLoad_StaleResponseDoesNotClearLoadingFlag(t *testing.T) {
	t.Parallel()

	now := time.Now()
	listA := ordered(newTestProperty(idX, 1, now))

	var (
		mu       sync.Mutex
		calls    int
		releaseA = make(chan struct{})
		startedA = make(chan struct{})
		startedB = make(chan struct{})
		blockB   = make(chan struct{})
	)
	repo := &stubSelectionRepo{
		getAll: func(ctx context.Context) ([]*property.Property, error) {
			mu.Lock()
			calls++
			call := calls
			mu.Unlock()
			if call == 1 {
				close(startedA)
				<-releaseA
				return listA, nil
			}
			close(startedB)
			<-blockB
			return nil, nil
		},
	}
	c := NewSelectionController(repo, NoopMirror{}, testLogger())

	doneA := make(chan struct{})
	doneB := make(chan struct{})
	go func() {
		defer close(doneA)
		c.Load(context.Background())
	}()
	<-startedA
	go func() {
		defer close(doneB)
		c.Load(context.Background())
	}()
	<-startedB

	// A finishes while B is still in flight: its stale response must not
	// touch the loading flag that B now owns.
	close(releaseA)
	<-doneA

	require.True(t, c.State().Loading)
	require.Empty(t, c.State().Properties)

	close(blockB)
	<-doneB
	require.False(t, c.State().Loading)
}

func TestSelect_StoresOnlyNormalizedValue(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	c := NewSelectionController(fixedRepo(nil), NewValuesMirror(values), testLogger())

	c.Select("  " + idX + "  ")

	state := c.State()
	require.Equal(t, idX, state.RawSelection)
	require.Equal(t, idX, state.SafeSelection)
	require.Equal(t, idX, values.Get("propertyId"))

	c.Select("undefined")

	state = c.State()
	require.Empty(t, state.RawSelection)
	require.Empty(t, state.SafeSelection)
	require.Empty(t, values.Get("propertyId"))
}

func TestInitialAddressRead(t *testing.T) {
	t.Parallel()

	values := url.Values{"propertyId": []string{"NOT-AN-ID"}}
	c := NewSelectionController(fixedRepo(nil), NewValuesMirror(values), testLogger())

	state := c.State()
	require.Equal(t, "NOT-AN-ID", state.RawSelection)
	require.Empty(t, state.SafeSelection)
}

func TestSubscribe_EmitsSnapshots(t *testing.T) {
	t.Parallel()

	now := time.Now()
	list := ordered(newTestProperty(idX, 1, now))
	c := NewSelectionController(fixedRepo(list), NoopMirror{}, testLogger())

	var mu sync.Mutex
	var snapshots []SelectionSnapshot
	handler := func(s SelectionSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, s)
	}
	c.Subscribe(handler)

	c.Load(context.Background())

	mu.Lock()
	require.Len(t, snapshots, 2)
	require.True(t, snapshots[0].Loading)
	require.False(t, snapshots[1].Loading)
	require.Equal(t, idX, snapshots[1].SafeSelection)
	mu.Unlock()

	c.Select("")
	mu.Lock()
	require.Len(t, snapshots, 3)
	mu.Unlock()

	c.Unsubscribe(handler)
	c.Select(idX)
	mu.Lock()
	require.Len(t, snapshots, 3)
	mu.Unlock()
}

func TestSubscribe_SnapshotsArriveInMutationOrder(t *testing.T) {
	t.Parallel()

	c := NewSelectionController(fixedRepo(nil), NoopMirror{}, testLogger())

	var (
		mu        sync.Mutex
		delivered []string
	)
	c.Subscribe(func(s SelectionSnapshot) {
		mu.Lock()
		delivered = append(delivered, s.SafeSelection)
		mu.Unlock()
	})

	ids := []string{idX, idY, idZ, ""}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Select(ids[i%len(ids)])
		}(i)
	}
	wg.Wait()

	// The last snapshot delivered must describe the last mutation that
	// took effect, whatever the interleaving was.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 64)
	require.Equal(t, c.State().SafeSelection, delivered[len(delivered)-1])
}

func TestTeardown_DropsSubscribers(t *testing.T) {
	t.Parallel()

	c := NewSelectionController(fixedRepo(nil), NoopMirror{}, testLogger())

	called := false
	c.Subscribe(func(s SelectionSnapshot) {
		called = true
	})
	c.Teardown()
	c.Select(idX)

	require.False(t, called)
}
