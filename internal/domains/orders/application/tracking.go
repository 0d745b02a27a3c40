package application

import (
	"context"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

// Track resolves an order for the public tracking page. A missing order is
// ports.ErrNotFound; any other store failure is reported as ErrDependency so
// callers can offer a retry.
func (s *Service) Track(ctx context.Context, id string) (*orderstypes.TrackingView, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	rank := order.Status.Rank()
	steps := make([]orderstypes.TrackingStep, 0, 3)
	for _, status := range domain.Statuses() {
		steps = append(steps, orderstypes.TrackingStep{
			Status:  status,
			Reached: status.Rank() <= rank,
			Current: status == order.Status,
		})
	}
	view := &orderstypes.TrackingView{Order: order, Steps: steps}
	if order.Status != domain.StatusDelivered && order.EstimatedDelivery != nil {
		eta := *order.EstimatedDelivery
		view.EstimatedDelivery = &eta
	}
	return view, nil
}
