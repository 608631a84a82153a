package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/spreadsheet"
)

const defaultGluingType = "Keo giấy"

// GluingUseCase keeps the lamination log.
type GluingUseCase struct {
	records  repository.GluingRepository
	calendar Calendar
}

// NewGluingUseCase constructs GluingUseCase.
func NewGluingUseCase(records repository.GluingRepository, calendar Calendar) *GluingUseCase {
	return &GluingUseCase{records: records, calendar: calendar}
}

// List returns records newest date first.
func (u *GluingUseCase) List(ctx context.Context) ([]model.GluingRecord, error) {
	return u.records.List(ctx)
}

// Save stores a record, assigning an id and date when missing.
func (u *GluingUseCase) Save(ctx context.Context, g model.GluingRecord) (*model.GluingRecord, error) {
	g.OrderID = strings.TrimSpace(g.OrderID)
	g.ProductName = strings.TrimSpace(g.ProductName)
	g.GluingType = strings.TrimSpace(g.GluingType)
	g.WorkerName = strings.TrimSpace(g.WorkerName)
	if g.GluingType == "" {
		g.GluingType = defaultGluingType
	}
	switch {
	case g.OrderID == "":
		return nil, domainErrors.Invalid("orderId", domainErrors.ErrRequired)
	case g.ProductName == "":
		return nil, domainErrors.Invalid("productName", domainErrors.ErrRequired)
	case g.Quantity < 0:
		return nil, domainErrors.Invalid("quantity", domainErrors.ErrInvalidQuantity)
	case g.FailQuantity < 0 || g.FailQuantity > g.Quantity:
		return nil, domainErrors.Invalid("failQuantity", domainErrors.ErrInvalidQuantity)
	}

	if g.ID == "" {
		g.ID = newRecordID()
	}
	if g.Date.IsZero() {
		g.Date = u.calendar.Now()
	}
	if err := u.records.Upsert(ctx, g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes a record. Only admins may delete.
func (u *GluingUseCase) Delete(ctx context.Context, actor model.User, id string) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	return u.records.Delete(ctx, id)
}

// Export renders the log as a workbook and names the file.
func (u *GluingUseCase) Export(ctx context.Context) (string, []byte, error) {
	records, err := u.records.List(ctx)
	if err != nil {
		return "", nil, err
	}
	content, err := spreadsheet.ExportGluing(records, u.calendar.Location())
	if err != nil {
		return "", nil, err
	}
	return spreadsheet.GluingFileName(u.calendar.Now()), content, nil
}
