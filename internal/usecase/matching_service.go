package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/skillmatch/backend/internal/domain"
)

// MatchingServiceConfig holds configuration for the matching service
type MatchingServiceConfig struct {
	EnableDebugLogging bool
}

// MatchingService runs bench matching over uploaded datasets
type MatchingService struct {
	datasets           domain.DatasetRepository
	loader             domain.WorkbookLoader
	enableDebugLogging bool
	now                func() time.Time
}

// NewMatchingService creates a new matching service with dependencies
func NewMatchingService(
	datasets domain.DatasetRepository,
	loader domain.WorkbookLoader,
	config MatchingServiceConfig,
) *MatchingService {
	return &MatchingService{
		datasets:           datasets,
		loader:             loader,
		enableDebugLogging: config.EnableDebugLogging,
		now:                time.Now,
	}
}

// CreateDataset parses the uploaded workbooks and stores them under a new id.
// Missing sheets or columns fail the whole upload; nothing is stored.
func (s *MatchingService) CreateDataset(ctx context.Context, sources domain.WorkbookSources) (*domain.Dataset, error) {
	if sources.BenchDemand == nil || sources.Subcon == nil || sources.Master == nil {
		return nil, fmt.Errorf("%w: bench & demand, sub-con and master skill workbooks are all required", domain.ErrInvalidRequest)
	}

	tables, err := s.loader.Load(ctx, sources)
	if err != nil {
		return nil, err
	}

	dataset := &domain.Dataset{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Tables:    *tables,
	}
	if err := s.datasets.Save(ctx, dataset); err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}

	counts := dataset.Counts()
	log.Printf("[MATCH] Dataset %s created: bench=%d demand=%d subcon=%d master=%d",
		dataset.ID, counts.Bench, counts.Demand, counts.Subcon, counts.Master)

	return dataset, nil
}

// GetDataset returns a stored dataset.
func (s *MatchingService) GetDataset(ctx context.Context, id string) (*domain.Dataset, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.datasets.Get(ctx, id)
}

// DeleteDataset discards a stored dataset.
func (s *MatchingService) DeleteDataset(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidRequest
	}
	if _, err := s.datasets.Get(ctx, id); err != nil {
		return err
	}
	return s.datasets.Delete(ctx, id)
}

// BenchView returns the filtered bench pool of a stored dataset.
func (s *MatchingService) BenchView(ctx context.Context, id string, filter domain.BenchFilter) (*domain.BenchView, error) {
	dataset, err := s.GetDataset(ctx, id)
	if err != nil {
		return nil, err
	}
	view := FilterBench(dataset.Tables.Bench, filter)
	return &view, nil
}

// Match runs one matching request against a stored dataset.
func (s *MatchingService) Match(ctx context.Context, request *domain.MatchRequest) (*domain.Report, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	dataset, err := s.GetDataset(ctx, request.DatasetID)
	if err != nil {
		return nil, err
	}

	return s.MatchTables(&dataset.Tables, request)
}

// MatchTables runs one matching request against in-memory tables.
func (s *MatchingService) MatchTables(tables *domain.Tables, request *domain.MatchRequest) (*domain.Report, error) {
	if tables == nil || request == nil {
		return nil, domain.ErrInvalidRequest
	}
	if request.Mode != domain.ModeDemand && request.Mode != domain.ModeSubcon {
		return nil, fmt.Errorf("%w: unknown match mode %q", domain.ErrInvalidRequest, request.Mode)
	}
	if err := request.Range.Validate(); err != nil {
		return nil, err
	}

	bench := FilterBench(tables.Bench, request.Filter).Employees
	master := BuildMasterTable(tables.Master)
	targets := tables.Targets(request.Mode)

	if s.enableDebugLogging {
		log.Printf("[MATCH] mode=%s bench=%d targets=%d master=%d range=[%d, %d]",
			request.Mode, len(bench), len(targets), len(master), request.Range.Min, request.Range.Max)
	}

	report := RunMatching(bench, targets, master, request.Mode, request.Range)

	for _, w := range report.Warnings {
		log.Printf("[MATCH] WARNING: %s (LDAP ID %s)", w.Message, w.LDAPID)
	}
	if s.enableDebugLogging {
		log.Printf("[MATCH] %d %s matches in range", len(report.Results), request.Mode)
	}

	return &report, nil
}
