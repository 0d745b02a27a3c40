package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

// FingerprintOrder hashes the trimmed submission so a retried form with
// cosmetic whitespace differences still matches its first attempt.
func FingerprintOrder(input orderstypes.CreateOrderInput) string {
	normalized := orderstypes.CreateOrderInput{
		ProductID:    strings.TrimSpace(input.ProductID),
		Quantity:     strings.TrimSpace(input.Quantity),
		CustomerName: strings.TrimSpace(input.CustomerName),
		Contact:      strings.TrimSpace(input.Contact),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Address:      strings.TrimSpace(input.Address),
	}
	// string-only struct; Marshal cannot fail
	payload, _ := json.Marshal(normalized)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (s *Service) idempotencyKey(input orderstypes.CreateOrderInput) (string, string) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		return "", ""
	}
	return key, FingerprintOrder(input)
}

// replay returns the order a previous submission with the same key created,
// or nil when the key is new.
func (s *Service) replay(ctx context.Context, key, fingerprint string) (*domain.Order, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return nil, dependencyError("idempotency store", err)
	}
	if record == nil {
		return nil, nil
	}
	if record.RequestHash != fingerprint {
		return nil, fmt.Errorf("%w: key %q", ErrIdempotencyConflict, key)
	}
	order, err := s.repo.GetByID(ctx, record.OrderID)
	if err != nil {
		return nil, dependencyError("order store", err)
	}
	s.logger.InfoContext(ctx, "order submission replayed",
		slog.String("order.id", order.ID), slog.String("idempotency.key", key))
	return order, nil
}

// remember binds the key to the new order. If a concurrent submission with
// the same key won, its order is returned and ours stays unreferenced.
func (s *Service) remember(ctx context.Context, key, fingerprint string, order *domain.Order) (*domain.Order, error) {
	existing, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: fingerprint,
		OrderID:     order.ID,
	})
	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, ports.ErrIdempotencyConflict) && existing != nil:
		if existing.RequestHash != fingerprint {
			return nil, fmt.Errorf("%w: key %q", ErrIdempotencyConflict, key)
		}
		winner, getErr := s.repo.GetByID(ctx, existing.OrderID)
		if getErr != nil {
			return nil, dependencyError("order store", getErr)
		}
		s.logger.WarnContext(ctx, "concurrent order submission collapsed",
			slog.String("order.id", winner.ID), slog.String("orphan.id", order.ID))
		return winner, nil
	default:
		// The order is already stored; failing now would invite a duplicate retry.
		s.logger.WarnContext(ctx, "idempotency key not recorded",
			slog.String("order.id", order.ID), slog.String("error", err.Error()))
		return order, nil
	}
}
