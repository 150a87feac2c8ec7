package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/errors"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultItemLockWindow   = 24 * time.Hour
	defaultConfirmationTTL  = time.Hour
	defaultBorrowDays       = 14
	notificationEmitTimeout = 5 * time.Second
)

type swapService struct {
	txManager    repository.TransactionManager
	swapRepo     repository.SwapRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	trustRepo    repository.TrustRepository
	verification usecase.VerificationUsecase
	publisher    service.EventPublisher // optional; nil disables notifications
	logger       *slog.Logger

	lockWindow        time.Duration
	confirmationTTL   time.Duration
	defaultBorrowDays int

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewSwapService creates the swap lifecycle manager. It owns the authoritative
// state machine; every transition funnels through it.
func NewSwapService(
	txManager repository.TransactionManager,
	swapRepo repository.SwapRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	trustRepo repository.TrustRepository,
	verification usecase.VerificationUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.SwapUsecase {
	// If Swap is not configured, provide a default configuration
	if cfg.Swap == nil {
		cfg.Swap = &config.SwapConfig{
			ItemLockWindow:    defaultItemLockWindow,
			ConfirmationTTL:   defaultConfirmationTTL,
			DefaultBorrowDays: defaultBorrowDays,
		}
	}

	svc := &swapService{
		txManager:         txManager,
		swapRepo:          swapRepo,
		itemRepo:          itemRepo,
		locationRepo:      locationRepo,
		trustRepo:         trustRepo,
		verification:      verification,
		publisher:         publisher,
		logger:            logger,
		lockWindow:        cfg.Swap.ItemLockWindow,
		confirmationTTL:   cfg.Swap.ConfirmationTTL,
		defaultBorrowDays: cfg.Swap.DefaultBorrowDays,
		now:               time.Now,
	}
	if svc.lockWindow <= 0 {
		svc.lockWindow = defaultItemLockWindow
	}
	if svc.confirmationTTL <= 0 {
		svc.confirmationTTL = defaultConfirmationTTL
	}
	if svc.defaultBorrowDays <= 0 {
		svc.defaultBorrowDays = defaultBorrowDays
	}

	return svc
}

// Propose creates a new swap in Requested state. All preconditions are checked
// before any write; the swap row and both item locks commit atomically.
func (s *swapService) Propose(ctx context.Context, input *usecase.ProposeSwapInput) (*entity.Swap, error) {
	if input.InitiatorID == input.ReceiverID {
		return nil, domainerrors.ErrValidation.WithDetails("cannot propose a swap with yourself")
	}
	if input.ReceiverItem != nil && *input.ReceiverItem == input.InitiatorItem {
		return nil, domainerrors.ErrValidation.WithDetails("both sides reference the same item")
	}

	trusted, err := s.trustRepo.TrustExists(ctx, input.InitiatorID, input.ReceiverID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check trust relationship")
	}
	if !trusted {
		return nil, domainerrors.ErrValidation.WithDetails("no trust relationship between the parties")
	}

	now := s.now()
	if err := s.checkItemAvailable(ctx, input.InitiatorItem, input.InitiatorID, now); err != nil {
		return nil, err
	}
	if input.ReceiverItem != nil {
		if err := s.checkItemAvailable(ctx, *input.ReceiverItem, input.ReceiverID, now); err != nil {
			return nil, err
		}
	}

	borrowDays := input.BorrowDays
	if input.IsBorrowing && borrowDays <= 0 {
		borrowDays = s.defaultBorrowDays
	}

	lockUntil := now.Add(s.lockWindow)
	swap := &entity.Swap{
		ID:            uuid.New(),
		InitiatorID:   input.InitiatorID,
		ReceiverID:    input.ReceiverID,
		InitiatorItem: input.InitiatorItem,
		ReceiverItem:  input.ReceiverItem,
		Status:        entity.SwapStatusRequested,
		LockExpiresAt: &lockUntil,
		IsBorrowing:   input.IsBorrowing,
		BorrowDays:    borrowDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.NewSwapRepository().CreateSwap(ctx, swap); err != nil {
			return errors.Wrap(err, "failed to create swap")
		}

		items := repos.NewItemRepository()
		if err := s.lockItem(ctx, items, swap.InitiatorItem, swap.ID, lockUntil); err != nil {
			return err
		}
		if swap.ReceiverItem != nil {
			if err := s.lockItem(ctx, items, *swap.ReceiverItem, swap.ID, lockUntil); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(&service.SwapEvent{
		EventType:   service.EventSwapProposed,
		RecipientID: swap.ReceiverID.String(),
		SwapID:      swap.ID.String(),
		Message:     "You have a new swap proposal",
		ContentType: "item",
		ContentID:   swap.InitiatorItem.String(),
	})

	return swap, nil
}

// Accept moves a Requested swap to Accepted with the agreed meetup, refreshing
// both item locks for another full window.
func (s *swapService) Accept(ctx context.Context, swapID, actingUser uuid.UUID, input *usecase.AcceptSwapInput) (*entity.Swap, error) {
	if !input.MeetupTime.After(s.now()) {
		return nil, domainerrors.ErrValidation.WithDetails("meetup time must be in the future")
	}

	location, err := s.locationRepo.FindLocationByID(ctx, input.MeetupLocation)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, domainerrors.ErrValidation.WithDetails("unknown meetup location")
		}

		return nil, errors.Wrap(err, "failed to find meetup location")
	}
	if !location.IsActive {
		return nil, domainerrors.ErrValidation.WithDetails("meetup location is not active")
	}

	var swap *entity.Swap
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		swap, err = s.loadSwapForUpdate(ctx, repos, swapID)
		if err != nil {
			return err
		}
		if swap.ReceiverID != actingUser {
			return domainerrors.ErrNotAuthorized.WithDetails("only the receiver may accept")
		}
		if swap.Status != entity.SwapStatusRequested {
			return domainerrors.ErrInvalidTransition.WithDetails(
				fmt.Sprintf("cannot accept a swap in state %q", swap.Status))
		}

		now := s.now()
		lockUntil := now.Add(s.lockWindow)
		meetupTime := input.MeetupTime
		swap.Status = entity.SwapStatusAccepted
		swap.MeetupLocation = &location.ID
		swap.MeetupTime = &meetupTime
		swap.LockExpiresAt = &lockUntil
		swap.UpdatedAt = now

		items := repos.NewItemRepository()
		if err := s.lockItem(ctx, items, swap.InitiatorItem, swap.ID, lockUntil); err != nil {
			return err
		}
		if swap.ReceiverItem != nil {
			if err := s.lockItem(ctx, items, *swap.ReceiverItem, swap.ID, lockUntil); err != nil {
				return err
			}
		}

		if err := repos.NewSwapRepository().UpdateSwap(ctx, swap); err != nil {
			return errors.Wrap(err, "failed to update swap")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(&service.SwapEvent{
		EventType:   service.EventSwapAccepted,
		RecipientID: swap.InitiatorID.String(),
		SwapID:      swap.ID.String(),
		Message:     "Your swap proposal was accepted",
		ContentType: "location",
		ContentID:   location.ID.String(),
	})

	return swap, nil
}

// Confirm drives the two-phase completion gate. The row lock taken on the swap
// serializes concurrent confirmations and cancel calls; the call that observes
// both confirmation markers performs completion inside the same transaction,
// so the exchange record and ownership mutation commit exactly once.
func (s *swapService) Confirm(ctx context.Context, swapID, actingUser uuid.UUID, input *usecase.ConfirmSwapInput) (*usecase.ConfirmSwapResult, error) {
	var result *usecase.ConfirmSwapResult
	var completedSwap *entity.Swap

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		swap, err := s.loadSwapForUpdate(ctx, repos, swapID)
		if err != nil {
			return err
		}
		if !swap.IsParty(actingUser) {
			return domainerrors.ErrNotAuthorized
		}

		switch swap.Status {
		case entity.SwapStatusAccepted, entity.SwapStatusConfirmed:
			// confirmable
		default:
			return domainerrors.ErrInvalidTransition.WithDetails(
				fmt.Sprintf("cannot confirm a swap in state %q", swap.Status))
		}

		if _, err := s.verification.VerifyToken(ctx, &usecase.VerifyTokenInput{
			Token:          input.Proof,
			ExpectedSwapID: swap.ID,
			ExpectedUserID: actingUser,
			Latitude:       input.Latitude,
			Longitude:      input.Longitude,
		}); err != nil {
			return err
		}

		now := s.now()
		confirmations := repos.NewConfirmationRepository()

		existing, err := confirmations.FindConfirmation(ctx, swap.ID, actingUser)
		if err != nil && !errors.Is(err, repository.ErrConfirmationNotFound) {
			return errors.Wrap(err, "failed to find confirmation")
		}
		if existing != nil && !existing.IsExpired(now) {
			return domainerrors.ErrAlreadyConfirmed
		}

		if err := confirmations.UpsertConfirmation(ctx, &entity.SwapConfirmation{
			SwapID:      swap.ID,
			UserID:      actingUser,
			ConfirmedAt: now,
			ExpiresAt:   now.Add(s.confirmationTTL),
		}); err != nil {
			return errors.Wrap(err, "failed to record confirmation")
		}

		counterpart, err := confirmations.FindConfirmation(ctx, swap.ID, swap.Counterpart(actingUser))
		if err != nil && !errors.Is(err, repository.ErrConfirmationNotFound) {
			return errors.Wrap(err, "failed to find counterpart confirmation")
		}

		if counterpart == nil || counterpart.IsExpired(now) {
			// First confirmation of the pair: mark partial and wait.
			swap.Status = entity.SwapStatusConfirmed
			swap.UpdatedAt = now
			if err := repos.NewSwapRepository().UpdateSwap(ctx, swap); err != nil {
				return errors.Wrap(err, "failed to update swap")
			}

			result = &usecase.ConfirmSwapResult{Swap: swap, Completed: false}

			return nil
		}

		exchange, err := s.complete(ctx, repos, swap, now)
		if err != nil {
			return err
		}

		result = &usecase.ConfirmSwapResult{Swap: swap, Completed: true, Exchange: exchange}
		completedSwap = swap

		return nil
	})
	if err != nil {
		return nil, err
	}

	if completedSwap != nil {
		for _, recipient := range []uuid.UUID{completedSwap.InitiatorID, completedSwap.ReceiverID} {
			s.emit(&service.SwapEvent{
				EventType:   service.EventSwapCompleted,
				RecipientID: recipient.String(),
				SwapID:      completedSwap.ID.String(),
				Message:     "Your swap is complete",
			})
		}
	}

	return result, nil
}

// complete performs the terminal transition within the caller's transaction:
// ownership mutation, lock clearing, the exchange record and usage accounting.
func (s *swapService) complete(ctx context.Context, repos repository.RepositoryFactory, swap *entity.Swap, now time.Time) (*entity.Exchange, error) {
	items := repos.NewItemRepository()

	// The initiator's item always moves to the receiver. Trades move the
	// receiver's item back; borrows instead set a return deadline.
	if err := items.TransferOwnership(ctx, swap.InitiatorItem, swap.InitiatorID, swap.ReceiverID); err != nil {
		return nil, errors.Wrap(err, "failed to transfer initiator item")
	}
	if swap.ReceiverItem != nil && !swap.IsBorrowing {
		if err := items.TransferOwnership(ctx, *swap.ReceiverItem, swap.ReceiverID, swap.InitiatorID); err != nil {
			return nil, errors.Wrap(err, "failed to transfer receiver item")
		}
	}

	if err := items.UnlockItem(ctx, swap.InitiatorItem, swap.ID); err != nil {
		return nil, errors.Wrap(err, "failed to unlock initiator item")
	}
	if swap.ReceiverItem != nil {
		if err := items.UnlockItem(ctx, *swap.ReceiverItem, swap.ID); err != nil {
			return nil, errors.Wrap(err, "failed to unlock receiver item")
		}
	}

	swap.Status = entity.SwapStatusCompleted
	swap.LockExpiresAt = nil
	swap.UpdatedAt = now
	if swap.IsBorrowing {
		deadline := now.AddDate(0, 0, swap.BorrowDays)
		swap.ReturnDeadline = &deadline
	}
	if err := repos.NewSwapRepository().UpdateSwap(ctx, swap); err != nil {
		return nil, errors.Wrap(err, "failed to update swap")
	}

	exchange := &entity.Exchange{
		ID:                 uuid.New(),
		SwapID:             swap.ID,
		LocationID:         swap.MeetupLocation,
		ExchangedAt:        now,
		InitiatorConfirmed: true,
		ReceiverConfirmed:  true,
		ProofOfScan:        true,
		CreatedAt:          now,
	}
	if err := repos.NewExchangeRepository().CreateExchange(ctx, exchange); err != nil {
		return nil, errors.Wrap(err, "failed to create exchange record")
	}

	if swap.MeetupLocation != nil {
		if err := repos.NewLocationRepository().IncrementUsageCount(ctx, *swap.MeetupLocation); err != nil {
			return nil, errors.Wrap(err, "failed to increment location usage")
		}
	}

	if err := repos.NewConfirmationRepository().DeleteConfirmationsBySwap(ctx, swap.ID); err != nil {
		return nil, errors.Wrap(err, "failed to clear confirmations")
	}

	return exchange, nil
}

// Cancel moves any non-terminal swap to Cancelled. It takes the same row lock
// as Confirm, so a racing cancel and confirm serialize and the swap can never
// end up both Completed and Cancelled.
func (s *swapService) Cancel(ctx context.Context, swapID, actingUser uuid.UUID) (*entity.Swap, error) {
	var swap *entity.Swap
	var cancelled bool

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		swap, err = s.loadSwapForUpdate(ctx, repos, swapID)
		if err != nil {
			return err
		}
		if !swap.IsParty(actingUser) {
			return domainerrors.ErrNotAuthorized
		}
		if swap.Status == entity.SwapStatusCancelled {
			// Idempotent: repeating a cancel succeeds without side effects.
			return nil
		}
		if swap.Status == entity.SwapStatusCompleted {
			return domainerrors.ErrInvalidTransition.WithDetails("cannot cancel a completed swap")
		}

		now := s.now()
		swap.Status = entity.SwapStatusCancelled
		swap.LockExpiresAt = nil
		swap.UpdatedAt = now

		items := repos.NewItemRepository()
		if err := items.UnlockItem(ctx, swap.InitiatorItem, swap.ID); err != nil {
			return errors.Wrap(err, "failed to unlock initiator item")
		}
		if swap.ReceiverItem != nil {
			if err := items.UnlockItem(ctx, *swap.ReceiverItem, swap.ID); err != nil {
				return errors.Wrap(err, "failed to unlock receiver item")
			}
		}

		if err := repos.NewConfirmationRepository().DeleteConfirmationsBySwap(ctx, swap.ID); err != nil {
			return errors.Wrap(err, "failed to clear confirmations")
		}

		if err := repos.NewSwapRepository().UpdateSwap(ctx, swap); err != nil {
			return errors.Wrap(err, "failed to update swap")
		}
		cancelled = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled {
		s.emit(&service.SwapEvent{
			EventType:   service.EventSwapCancelled,
			RecipientID: swap.Counterpart(actingUser).String(),
			SwapID:      swap.ID.String(),
			Message:     "The swap was cancelled by the other party",
		})
	}

	return swap, nil
}

// RequestExtension asks for more time on a completed borrow swap. Only the
// borrowing party (the receiver) may ask, and only one request may be pending.
func (s *swapService) RequestExtension(ctx context.Context, swapID, actingUser uuid.UUID, input *usecase.RequestExtensionInput) (*entity.ExtensionRequest, error) {
	if input.DaysRequested <= 0 {
		return nil, domainerrors.ErrValidation.WithDetails("days requested must be positive")
	}

	var request *entity.ExtensionRequest
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		swap, err := s.loadSwapForUpdate(ctx, repos, swapID)
		if err != nil {
			return err
		}
		if !swap.IsParty(actingUser) {
			return domainerrors.ErrNotAuthorized
		}
		if !swap.IsBorrowing || swap.Status != entity.SwapStatusCompleted {
			return domainerrors.ErrInvalidTransition.WithDetails("extensions apply only to completed borrow swaps")
		}
		if swap.ReceiverID != actingUser {
			return domainerrors.ErrNotAuthorized.WithDetails("only the borrowing party may request an extension")
		}

		extensions := repos.NewExtensionRepository()
		if _, err := extensions.FindPendingExtensionBySwap(ctx, swap.ID); err == nil {
			return domainerrors.ErrExtensionPending
		} else if !errors.Is(err, repository.ErrExtensionNotFound) {
			return errors.Wrap(err, "failed to find pending extension")
		}

		now := s.now()
		request = &entity.ExtensionRequest{
			ID:            uuid.New(),
			SwapID:        swap.ID,
			RequesterID:   actingUser,
			DaysRequested: input.DaysRequested,
			Reason:        input.Reason,
			Status:        entity.ExtensionPending,
			CreatedAt:     now,
		}

		if err := extensions.CreateExtension(ctx, request); err != nil {
			return errors.Wrap(err, "failed to create extension request")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	swap, err := s.swapRepo.FindSwapByID(ctx, swapID)
	if err == nil {
		s.emit(&service.SwapEvent{
			EventType:   service.EventExtensionRequest,
			RecipientID: swap.InitiatorID.String(),
			SwapID:      swap.ID.String(),
			Message:     fmt.Sprintf("The borrower asked for %d more days", request.DaysRequested),
			ContentType: "extension",
			ContentID:   request.ID.String(),
		})
	}

	return request, nil
}

// RespondToExtension approves or denies the pending extension request. Only
// the lending party (the initiator) decides; approval pushes the return
// deadline by exactly the requested day count.
func (s *swapService) RespondToExtension(ctx context.Context, swapID, actingUser uuid.UUID, input *usecase.RespondExtensionInput) (*entity.ExtensionRequest, error) {
	var request *entity.ExtensionRequest
	var requesterID uuid.UUID

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		swap, err := s.loadSwapForUpdate(ctx, repos, swapID)
		if err != nil {
			return err
		}
		if !swap.IsParty(actingUser) {
			return domainerrors.ErrNotAuthorized
		}
		if swap.InitiatorID != actingUser {
			return domainerrors.ErrNotAuthorized.WithDetails("only the lending party may respond")
		}

		extensions := repos.NewExtensionRepository()
		request, err = extensions.FindPendingExtensionBySwap(ctx, swap.ID)
		if err != nil {
			if errors.Is(err, repository.ErrExtensionNotFound) {
				return domainerrors.ErrNotFound.WithDetails("no pending extension request")
			}

			return errors.Wrap(err, "failed to find pending extension")
		}

		now := s.now()
		request.ResponseNote = input.ResponseNote
		request.RespondedAt = &now
		requesterID = request.RequesterID

		if !input.Approve {
			request.Status = entity.ExtensionDenied

			return errors.Wrap(extensions.UpdateExtension(ctx, request), "failed to update extension request")
		}

		request.Status = entity.ExtensionApproved
		if swap.ReturnDeadline == nil {
			return domainerrors.ErrInvalidTransition.WithDetails("swap has no return deadline")
		}
		deadline := swap.ReturnDeadline.AddDate(0, 0, request.DaysRequested)
		swap.ReturnDeadline = &deadline
		swap.UpdatedAt = now

		if err := extensions.UpdateExtension(ctx, request); err != nil {
			return errors.Wrap(err, "failed to update extension request")
		}

		return errors.Wrap(repos.NewSwapRepository().UpdateSwap(ctx, swap), "failed to update swap")
	})
	if err != nil {
		return nil, err
	}

	message := "Your extension request was denied"
	if request.Status == entity.ExtensionApproved {
		message = fmt.Sprintf("Your extension request was approved: %d more days", request.DaysRequested)
	}
	s.emit(&service.SwapEvent{
		EventType:   service.EventExtensionResponse,
		RecipientID: requesterID.String(),
		SwapID:      swapID.String(),
		Message:     message,
		ContentType: "extension",
		ContentID:   request.ID.String(),
	})

	return request, nil
}

// GetSwap retrieves a swap visible to the acting user.
func (s *swapService) GetSwap(ctx context.Context, swapID, actingUser uuid.UUID) (*entity.Swap, error) {
	swap, err := s.swapRepo.FindSwapByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find swap")
	}
	if !swap.IsParty(actingUser) {
		return nil, domainerrors.ErrNotAuthorized
	}

	return swap, nil
}

// ListSwaps retrieves the acting user's swaps, newest first.
func (s *swapService) ListSwaps(ctx context.Context, actingUser uuid.UUID) ([]*entity.Swap, error) {
	swaps, err := s.swapRepo.FindSwapsByParty(ctx, actingUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list swaps")
	}

	return swaps, nil
}

// checkItemAvailable verifies ownership and lock state before proposing.
func (s *swapService) checkItemAvailable(ctx context.Context, itemID, expectedOwner uuid.UUID, now time.Time) error {
	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrNotFound.WithDetails("item not found")
		}

		return errors.Wrap(err, "failed to find item")
	}
	if item.OwnerID != expectedOwner {
		return domainerrors.ErrValidation.WithDetails("item is not owned by the stated party")
	}
	if item.IsLocked(now) {
		return domainerrors.ErrValidation.WithDetails("item is locked by another swap")
	}

	return nil
}

// lockItem takes the conditional item lock, translating a lost race into the
// validation error the caller would have gotten on the precondition check.
func (s *swapService) lockItem(ctx context.Context, items repository.ItemRepository, itemID, swapID uuid.UUID, until time.Time) error {
	if err := items.LockItem(ctx, itemID, swapID, until); err != nil {
		if errors.Is(err, repository.ErrItemLockConflict) {
			return domainerrors.ErrValidation.WithDetails("item is locked by another swap")
		}

		return errors.Wrap(err, "failed to lock item")
	}

	return nil
}

// loadSwapForUpdate loads the swap under the per-swap row lock.
func (s *swapService) loadSwapForUpdate(ctx context.Context, repos repository.RepositoryFactory, swapID uuid.UUID) (*entity.Swap, error) {
	swap, err := repos.NewSwapRepository().FindSwapByIDForUpdate(ctx, swapID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find swap")
	}

	return swap, nil
}

// emit hands an event to the notification collaborator without blocking the
// calling operation. Failures are logged and dropped.
func (s *swapService) emit(event *service.SwapEvent) {
	if s.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notificationEmitTimeout)
		defer cancel()

		if err := s.publisher.PublishSwapEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish swap event",
				slog.String("event_type", string(event.EventType)),
				slog.String("swap_id", event.SwapID),
				slog.String("error", err.Error()),
			)
		}
	}()
}
