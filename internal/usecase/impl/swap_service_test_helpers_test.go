package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/infra/geo"
	"swapmeet/internal/infra/token"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCipher() service.TokenCipher {
	return token.NewCipher(token.NewKeyProvider("test-secret"))
}

// memStore is the shared in-memory backing of the fake repositories. A single
// mutex per store plays the role of the database row lock: Execute holds it
// for the whole transaction, so concurrent transactions serialize the same way
// SELECT FOR UPDATE serializes them.
type memStore struct {
	mu sync.Mutex

	swaps         map[uuid.UUID]*entity.Swap
	items         map[uuid.UUID]*entity.Item
	locations     map[uuid.UUID]*entity.Location
	exchanges     map[uuid.UUID]*entity.Exchange // keyed by swap ID
	confirmations map[confirmationKey]*entity.SwapConfirmation
	extensions    map[uuid.UUID]*entity.ExtensionRequest
	trusted       map[trustKey]bool
}

type confirmationKey struct {
	swapID uuid.UUID
	userID uuid.UUID
}

type trustKey struct {
	a uuid.UUID
	b uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		swaps:         make(map[uuid.UUID]*entity.Swap),
		items:         make(map[uuid.UUID]*entity.Item),
		locations:     make(map[uuid.UUID]*entity.Location),
		exchanges:     make(map[uuid.UUID]*entity.Exchange),
		confirmations: make(map[confirmationKey]*entity.SwapConfirmation),
		extensions:    make(map[uuid.UUID]*entity.ExtensionRequest),
		trusted:       make(map[trustKey]bool),
	}
}

func (m *memStore) addItem(ownerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	m.items[id] = &entity.Item{ID: id, OwnerID: ownerID}

	return id
}

func (m *memStore) addLocation(name string, lat, lng float64) *entity.Location {
	location := &entity.Location{
		ID:        uuid.New(),
		Name:      name,
		Category:  entity.CategoryLibrary,
		Latitude:  lat,
		Longitude: lng,
		City:      "Testville",
		Source:    entity.SourceCurated,
		IsActive:  true,
	}
	m.locations[location.ID] = location

	return location
}

func (m *memStore) trust(a, b uuid.UUID) {
	m.trusted[trustKey{a: a, b: b}] = true
	m.trusted[trustKey{a: b, b: a}] = true
}

// memTxManager serializes transactions with a dedicated mutex and doubles as
// the repository factory bound to the store.
type memTxManager struct {
	store *memStore
	txMu  sync.Mutex
}

func newMemTxManager(store *memStore) *memTxManager {
	return &memTxManager{store: store}
}

func (m *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	return fn(m)
}

func (m *memTxManager) NewSwapRepository() repository.SwapRepository { return &memSwapRepo{m.store} }
func (m *memTxManager) NewItemRepository() repository.ItemRepository { return &memItemRepo{m.store} }
func (m *memTxManager) NewExchangeRepository() repository.ExchangeRepository {
	return &memExchangeRepo{m.store}
}
func (m *memTxManager) NewConfirmationRepository() repository.ConfirmationRepository {
	return &memConfirmationRepo{m.store}
}
func (m *memTxManager) NewExtensionRepository() repository.ExtensionRepository {
	return &memExtensionRepo{m.store}
}
func (m *memTxManager) NewLocationRepository() repository.LocationRepository {
	return &memLocationRepo{m.store}
}

type memSwapRepo struct{ store *memStore }

func (r *memSwapRepo) CreateSwap(_ context.Context, swap *entity.Swap) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *swap
	r.store.swaps[swap.ID] = &copied

	return nil
}

func (r *memSwapRepo) FindSwapByID(_ context.Context, id uuid.UUID) (*entity.Swap, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	swap, ok := r.store.swaps[id]
	if !ok {
		return nil, repository.ErrSwapNotFound
	}
	copied := *swap

	return &copied, nil
}

func (r *memSwapRepo) FindSwapByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Swap, error) {
	return r.FindSwapByID(ctx, id)
}

func (r *memSwapRepo) FindSwapsByParty(_ context.Context, userID uuid.UUID) ([]*entity.Swap, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var swaps []*entity.Swap
	for _, swap := range r.store.swaps {
		if swap.IsParty(userID) {
			copied := *swap
			swaps = append(swaps, &copied)
		}
	}

	return swaps, nil
}

func (r *memSwapRepo) UpdateSwap(_ context.Context, swap *entity.Swap) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.swaps[swap.ID]; !ok {
		return repository.ErrSwapNotFound
	}
	copied := *swap
	r.store.swaps[swap.ID] = &copied

	return nil
}

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) FindItemByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	copied := *item

	return &copied, nil
}

func (r *memItemRepo) LockItem(_ context.Context, itemID, swapID uuid.UUID, until time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	if item.IsLocked(time.Now()) && item.LockedBySwap != nil && *item.LockedBySwap != swapID {
		return repository.ErrItemLockConflict
	}
	item.LockedUntil = &until
	item.LockedBySwap = &swapID

	return nil
}

func (r *memItemRepo) UnlockItem(_ context.Context, itemID, swapID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	if item.LockedBySwap != nil && *item.LockedBySwap == swapID {
		item.LockedUntil = nil
		item.LockedBySwap = nil
	}

	return nil
}

func (r *memItemRepo) TransferOwnership(_ context.Context, itemID, fromUserID, toUserID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	if item.OwnerID != fromUserID {
		return repository.ErrItemNotFound
	}
	item.OwnerID = toUserID

	return nil
}

type memExchangeRepo struct{ store *memStore }

func (r *memExchangeRepo) CreateExchange(_ context.Context, exchange *entity.Exchange) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.exchanges[exchange.SwapID]; ok {
		return repository.ErrExchangeExists
	}
	copied := *exchange
	r.store.exchanges[exchange.SwapID] = &copied

	return nil
}

func (r *memExchangeRepo) FindExchangeBySwap(_ context.Context, swapID uuid.UUID) (*entity.Exchange, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	exchange, ok := r.store.exchanges[swapID]
	if !ok {
		return nil, repository.ErrExchangeNotFound
	}
	copied := *exchange

	return &copied, nil
}

type memConfirmationRepo struct{ store *memStore }

func (r *memConfirmationRepo) UpsertConfirmation(_ context.Context, confirmation *entity.SwapConfirmation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *confirmation
	r.store.confirmations[confirmationKey{swapID: confirmation.SwapID, userID: confirmation.UserID}] = &copied

	return nil
}

func (r *memConfirmationRepo) FindConfirmation(_ context.Context, swapID, userID uuid.UUID) (*entity.SwapConfirmation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	confirmation, ok := r.store.confirmations[confirmationKey{swapID: swapID, userID: userID}]
	if !ok {
		return nil, repository.ErrConfirmationNotFound
	}
	copied := *confirmation

	return &copied, nil
}

func (r *memConfirmationRepo) FindConfirmationsBySwap(_ context.Context, swapID uuid.UUID) ([]*entity.SwapConfirmation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var confirmations []*entity.SwapConfirmation
	for key, confirmation := range r.store.confirmations {
		if key.swapID == swapID {
			copied := *confirmation
			confirmations = append(confirmations, &copied)
		}
	}

	return confirmations, nil
}

func (r *memConfirmationRepo) DeleteConfirmationsBySwap(_ context.Context, swapID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for key := range r.store.confirmations {
		if key.swapID == swapID {
			delete(r.store.confirmations, key)
		}
	}

	return nil
}

type memExtensionRepo struct{ store *memStore }

func (r *memExtensionRepo) CreateExtension(_ context.Context, request *entity.ExtensionRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *request
	r.store.extensions[request.ID] = &copied

	return nil
}

func (r *memExtensionRepo) FindExtensionByID(_ context.Context, id uuid.UUID) (*entity.ExtensionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.extensions[id]
	if !ok {
		return nil, repository.ErrExtensionNotFound
	}
	copied := *request

	return &copied, nil
}

func (r *memExtensionRepo) FindPendingExtensionBySwap(_ context.Context, swapID uuid.UUID) (*entity.ExtensionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, request := range r.store.extensions {
		if request.SwapID == swapID && request.Status == entity.ExtensionPending {
			copied := *request

			return &copied, nil
		}
	}

	return nil, repository.ErrExtensionNotFound
}

func (r *memExtensionRepo) UpdateExtension(_ context.Context, request *entity.ExtensionRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.extensions[request.ID]; !ok {
		return repository.ErrExtensionNotFound
	}
	copied := *request
	r.store.extensions[request.ID] = &copied

	return nil
}

type memLocationRepo struct{ store *memStore }

func (r *memLocationRepo) CreateLocation(_ context.Context, location *entity.Location) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.locations {
		if existing.Name == location.Name && existing.City == location.City {
			return repository.ErrLocationExists
		}
	}
	copied := *location
	r.store.locations[location.ID] = &copied

	return nil
}

func (r *memLocationRepo) FindLocationByID(_ context.Context, id uuid.UUID) (*entity.Location, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	location, ok := r.store.locations[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}
	copied := *location

	return &copied, nil
}

func (r *memLocationRepo) FindActiveLocationsWithinBound(_ context.Context, bound orb.Bound) ([]*entity.Location, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var locations []*entity.Location
	for _, location := range r.store.locations {
		if location.IsActive && geo.PointInBound(location.Latitude, location.Longitude, bound) {
			copied := *location
			locations = append(locations, &copied)
		}
	}

	return locations, nil
}

func (r *memLocationRepo) IncrementUsageCount(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	location, ok := r.store.locations[id]
	if !ok {
		return repository.ErrLocationNotFound
	}
	location.UsageCount++

	return nil
}

type memTrustRepo struct{ store *memStore }

func (r *memTrustRepo) TrustExists(_ context.Context, userA, userB uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.trusted[trustKey{a: userA, b: userB}], nil
}

// recordingPublisher captures emitted events for assertions. Safe for the
// publisher goroutines spawned by the lifecycle manager.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.SwapEvent
}

func (p *recordingPublisher) PublishSwapEvent(_ context.Context, event *service.SwapEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// swapFixture bundles a fully wired lifecycle manager over fresh in-memory state.
type swapFixture struct {
	store        *memStore
	service      usecase.SwapUsecase
	verification usecase.VerificationUsecase

	initiator uuid.UUID
	receiver  uuid.UUID
}

func newSwapFixture() *swapFixture {
	store := newMemStore()
	tx := newMemTxManager(store)
	verification := NewVerificationService(newTestCipher(), nil, &config.Config{})

	fixture := &swapFixture{
		store:        store,
		verification: verification,
		initiator:    uuid.New(),
		receiver:     uuid.New(),
	}
	fixture.service = NewSwapService(
		tx,
		&memSwapRepo{store},
		&memItemRepo{store},
		&memLocationRepo{store},
		&memTrustRepo{store},
		verification,
		nil,
		newDiscardLogger(),
		&config.Config{},
	)
	store.trust(fixture.initiator, fixture.receiver)

	return fixture
}

// proposeAccepted drives a fresh trade swap through Propose and Accept.
func (f *swapFixture) proposeAccepted(t interface {
	Helper()
	Fatalf(format string, args ...any)
}) *entity.Swap {
	t.Helper()
	ctx := context.Background()

	itemA := f.store.addItem(f.initiator)
	itemB := f.store.addItem(f.receiver)
	location := f.store.addLocation("Central Library", 40.0, -74.0)

	swap, err := f.service.Propose(ctx, &usecase.ProposeSwapInput{
		InitiatorID:   f.initiator,
		ReceiverID:    f.receiver,
		InitiatorItem: itemA,
		ReceiverItem:  &itemB,
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	swap, err = f.service.Accept(ctx, swap.ID, f.receiver, &usecase.AcceptSwapInput{
		MeetupLocation: location.ID,
		MeetupTime:     time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	return swap
}

// proofFor mints a valid proof token for the given party of the swap.
func (f *swapFixture) proofFor(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, swapID, userID uuid.UUID) string {
	t.Helper()

	proof, err := f.verification.IssueToken(context.Background(), swapID, userID, nil, nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	return proof
}
