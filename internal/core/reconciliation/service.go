// package reconciliation/service.go
package reconciliation

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"reconciliation-service/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service defines the interface for the reconciliation engine.
type Service interface {
	BuildReport(ctx context.Context, docs []domain.FiscalDocument) (domain.Report, error)
	FindDuplicates(existing, incoming []domain.FiscalDocument) []domain.FiscalDocument
}

type service struct {
	workers int
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new reconciliation service. workers bounds the number of
// documents reconciled concurrently; zero or less means one per CPU.
func NewService(workers int, logger *zap.Logger) Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{workers: workers, logger: logger, now: time.Now}
}

// BuildReport normalizes and reconciles every document and summarizes the batch.
// Rows come back in input order whatever order the workers finish in.
func (s *service) BuildReport(ctx context.Context, docs []domain.FiscalDocument) (domain.Report, error) {
	rows := make([]domain.ReconciliationRow, len(docs))
	var totals domain.Totals

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	g.Go(func() error {
		totals = Totals(docs)
		return nil
	})

	for i, doc := range docs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = Reconcile(Normalize(doc))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Report{}, fmt.Errorf("falha ao conciliar documentos: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Report{}, fmt.Errorf("falha ao conciliar documentos: %w", err)
	}

	report := domain.Report{
		ID:             uuid.NewString(),
		GeneratedAt:    s.now(),
		Documents:      docs,
		Reconciliation: rows,
		Summary:        SummaryRows(totals),
		Totals:         totals,
		Duplicates:     s.FindDuplicates(nil, docs),
	}

	s.logger.Info("report built",
		zap.String("report_id", report.ID),
		zap.Int("documents", totals.Documents),
		zap.Int("inbound", totals.Inbound.Count),
		zap.Int("outbound", totals.Outbound.Count),
		zap.Int("duplicates", len(report.Duplicates)),
	)
	return report, nil
}

// FindDuplicates returns the documents of incoming that were already seen, either
// in existing or earlier in incoming itself. Documents are matched by access key,
// or by type and number when the key is missing.
func (s *service) FindDuplicates(existing, incoming []domain.FiscalDocument) []domain.FiscalDocument {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, doc := range existing {
		if key := duplicateKey(doc); key != "" {
			seen[key] = true
		}
	}

	var duplicates []domain.FiscalDocument
	for _, doc := range incoming {
		key := duplicateKey(doc)
		if key == "" {
			continue
		}
		if seen[key] {
			duplicates = append(duplicates, doc)
			continue
		}
		seen[key] = true
	}
	return duplicates
}

func duplicateKey(doc domain.FiscalDocument) string {
	if key := strings.TrimSpace(doc.AccessKey); key != "" {
		return "key:" + key
	}
	if number := strings.TrimSpace(doc.DocumentNumber); number != "" {
		return "num:" + string(doc.DocumentType) + ":" + number
	}
	return ""
}
