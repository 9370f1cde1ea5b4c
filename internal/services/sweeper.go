package services

import (
	"context"
	"log"
	"time"
)

// SweepExpiredPending removes pending registrations past their verification
// deadline. Verify rejects expired records on its own; the sweep keeps the
// table from accumulating dead rows.
func (s *RegistrationService) SweepExpiredPending(ctx context.Context) (int64, error) {
	return s.store.Pending().DeleteExpired(ctx, s.now())
}

// StartPendingSweeper runs the sweep on an interval until ctx is done.
func (s *RegistrationService) StartPendingSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := s.SweepExpiredPending(ctx); err != nil {
					log.Printf("pending sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("pending sweep removed %d expired registrations", n)
				}
			}
		}
	}()
}
