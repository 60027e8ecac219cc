package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/repository"
	"github.com/dukerupert/storefront/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// MergeService folds an anonymous cart into an account cart at sign-in.
type MergeService interface {
	// MergeOnLogin moves every line of the session's anonymous cart into the
	// account's active cart, summing quantities for products already present,
	// then deletes the anonymous cart. It runs in a single transaction and
	// is a no-op when the session has no anonymous cart.
	MergeOnLogin(ctx context.Context, sessionID string, accountID uuid.UUID) (*MergeResult, error)
}

// MergeResult describes what a merge did.
type MergeResult struct {
	Merged      bool      `json:"merged"`
	CartID      uuid.UUID `json:"cart_id,omitempty"`
	ItemsMerged int       `json:"items_merged"`
	ItemsMoved  int       `json:"items_moved"`
}

type mergeService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewMergeService creates a new MergeService instance
func NewMergeService(store repository.Store, logger *slog.Logger) MergeService {
	return &mergeService{
		store:  store,
		logger: logger,
	}
}

func (s *mergeService) MergeOnLogin(ctx context.Context, sessionID string, accountID uuid.UUID) (*MergeResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || accountID == uuid.Nil {
		return nil, ErrInvalidIdentity
	}

	result := &MergeResult{}

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		anon, err := q.LockActiveCartBySession(ctx, sessionID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("failed to lock anonymous cart: %w", err)
		}

		target, err := resolveCart(ctx, q, domain.AccountOwner(accountID))
		if err != nil {
			return err
		}
		result.CartID = mustUUID(target.ID)

		existing, err := q.ListCartItems(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("failed to list account cart items: %w", err)
		}
		owned := make(map[pgtype.UUID]bool, len(existing))
		for _, item := range existing {
			owned[item.ProductID] = true
		}

		incoming, err := q.ListCartItems(ctx, anon.ID)
		if err != nil {
			return fmt.Errorf("failed to list anonymous cart items: %w", err)
		}

		for _, item := range incoming {
			if owned[item.ProductID] {
				if _, err := q.AddCartItem(ctx, repository.AddCartItemParams{
					CartID:    target.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				}); err != nil {
					return fmt.Errorf("failed to merge cart item: %w", err)
				}
				result.ItemsMerged++
				continue
			}

			if err := q.MoveCartItem(ctx, repository.MoveCartItemParams{
				ID:     item.ID,
				CartID: target.ID,
			}); err != nil {
				return fmt.Errorf("failed to move cart item: %w", err)
			}
			owned[item.ProductID] = true
			result.ItemsMoved++
		}

		if err := q.DeleteCart(ctx, anon.ID); err != nil {
			return fmt.Errorf("failed to delete anonymous cart: %w", err)
		}

		result.Merged = true
		return nil
	})
	if err != nil {
		if telemetry.Business != nil {
			telemetry.Business.CartMerges.WithLabelValues("failed").Inc()
		}
		s.logger.Error("cart merge failed",
			"account_id", accountID.String(),
			"error", err,
		)
		return nil, err
	}

	if telemetry.Business != nil {
		label := "noop"
		if result.Merged {
			label = "merged"
			telemetry.Business.CartItemsMoved.Add(float64(result.ItemsMerged + result.ItemsMoved))
		}
		telemetry.Business.CartMerges.WithLabelValues(label).Inc()
	}

	if result.Merged {
		s.logger.Info("anonymous cart merged",
			"account_id", accountID.String(),
			"cart_id", result.CartID.String(),
			"items_merged", result.ItemsMerged,
			"items_moved", result.ItemsMoved,
		)
	}

	return result, nil
}
