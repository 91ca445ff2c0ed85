package service

import (
	"context"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/importer"
)

type exportService struct {
	uow db.UnitOfWork
}

func NewExportService(uow db.UnitOfWork) ExportService {
	return &exportService{uow: uow}
}

// Export renders the stored hierarchy as an importable payload.
func (s *exportService) Export(ctx context.Context) (*importer.Payload, error) {
	snap, err := loadSnapshot(ctx, s.uow)
	if err != nil {
		return nil, err
	}
	return importer.FromHierarchy(snap.Hierarchy), nil
}
