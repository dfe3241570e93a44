package images

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"product-images/feature/images/persistence"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchReport summarises a batch run.
type BatchReport struct {
	// Linked lists the codes whose images were linked.
	Linked []string `json:"linked"`
	// Skipped lists the codes with no product, folder or images.
	Skipped []string `json:"skipped"`
	// Failed maps codes to the error that stopped them.
	Failed map[string]string `json:"failed"`
}

// ProcessAll processes codes concurrently. Blank and repeated codes are
// ignored. Per-code failures are collected in the report and combined in the
// returned error; an unsupported database handle aborts the whole batch.
func (s *Service) ProcessAll(ctx context.Context, codes []string) (*BatchReport, error) {
	report := &BatchReport{
		Linked:  []string{},
		Skipped: []string{},
		Failed:  map[string]string{},
	}

	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, code := range uniqueCodes(codes) {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			linked, err := s.ProcessCode(gctx, code)
			if errors.Is(err, persistence.ErrUnsupportedBackend) {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				report.Failed[code] = err.Error()
				errs = multierr.Append(errs, err)
			case linked:
				report.Linked = append(report.Linked, code)
			default:
				report.Skipped = append(report.Skipped, code)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	sort.Strings(report.Linked)
	sort.Strings(report.Skipped)

	s.logger.Info("Batch finished",
		zap.Int("linked", len(report.Linked)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, errs
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
