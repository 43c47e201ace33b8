package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/metrics"
)

// StatsStores are the collections the dashboard counts are derived from.
type StatsStores struct {
	ServiceRequests ports.RecordStore[domain.ServiceRequest]
	Reviews         ports.RecordStore[domain.Review]
	Complaints      ports.RecordStore[domain.Complaint]
	Contact         ports.RecordStore[domain.ContactMessage]
}

// StatsService computes dashboard counts. Counts run concurrently and are not
// taken from a single snapshot.
type StatsService struct {
	stores StatsStores
	cache  ports.StatsCache
	log    zerolog.Logger
}

var _ ports.StatsService = (*StatsService)(nil)

// NewStatsService builds the aggregator. cache may be nil.
func NewStatsService(stores StatsStores, cache ports.StatsCache, log zerolog.Logger) *StatsService {
	return &StatsService{stores: stores, cache: cache, log: log}
}

func (s *StatsService) Get(ctx context.Context) (*domain.Stats, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("stats cache read failed")
		case ok:
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	stats, err := s.count(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *StatsService) count(ctx context.Context) (*domain.Stats, error) {
	var st domain.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(countInto(gctx, s.stores.ServiceRequests, nil, &st.TotalCustomers))
	g.Go(countInto(gctx, s.stores.ServiceRequests, ports.Filter{"status": domain.ServiceRequestPending}, &st.PendingCustomers))
	g.Go(countInto(gctx, s.stores.Reviews, nil, &st.TotalReviews))
	g.Go(countInto(gctx, s.stores.Reviews, ports.Filter{"approved": false}, &st.PendingReviews))
	g.Go(countInto(gctx, s.stores.Complaints, nil, &st.TotalComplaints))
	g.Go(countInto(gctx, s.stores.Complaints, ports.Filter{"status": domain.ComplaintPending}, &st.PendingComplaints))
	g.Go(countInto(gctx, s.stores.Contact, nil, &st.TotalMessages))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}

func countInto[T any](ctx context.Context, store ports.RecordStore[T], filter ports.Filter, dst *int64) func() error {
	return func() error {
		n, err := store.Count(ctx, filter)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}
