// package reports/store.go
package reports

import (
	"errors"
	"time"

	"reconciliation-service/internal/domain"

	"github.com/patrickmn/go-cache"
)

// ErrReportNotFound is returned when a report expired or never existed.
var ErrReportNotFound = errors.New("relatório não encontrado ou expirado")

// Store keeps generated reports around so they can be exported later.
type Store interface {
	Save(report domain.Report)
	Get(id string) (domain.Report, error)
}

type store struct {
	cache *cache.Cache
}

// NewStore creates an in-memory store whose entries expire after ttl.
func NewStore(ttl time.Duration) Store {
	return &store{cache: cache.New(ttl, 2*ttl)}
}

func (s *store) Save(report domain.Report) {
	s.cache.SetDefault(report.ID, report)
}

func (s *store) Get(id string) (domain.Report, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return domain.Report{}, ErrReportNotFound
	}
	report, ok := v.(domain.Report)
	if !ok {
		return domain.Report{}, ErrReportNotFound
	}
	return report, nil
}
