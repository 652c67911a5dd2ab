package services

import (
	"errors"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportAction string

const (
	ReportActionApprove ReportAction = "approve"
	ReportActionReject  ReportAction = "reject"
)

// ReportService owns the report state machine: pending -> approved or
// pending -> rejected, nothing else. Approval conditionally removes the
// reported product; every notification fires strictly after the
// transaction has committed.
type ReportService struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewReportService(db *gorm.DB, notifier *notify.Notifier) *ReportService {
	return &ReportService{db: db, notifier: notifier}
}

// Submit files a report against a product. A reporter may not report
// their own listing and may hold at most one open report per product,
// enforced both by the in-transaction check and by the unique index on
// (reporter_id, product_id, open).
func (s *ReportService) Submit(p principal.Principal, productID uuid.UUID, reason, content string) (*models.Report, error) {
	if reason == "" {
		return nil, apperr.Validation("reason is required")
	}

	var report models.Report
	var reporterName, productName string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Dependency(err, "failed to load product")
		}
		if product.SellerID == p.UserID {
			return apperr.InvalidState("cannot report your own listing")
		}

		var openCount int64
		if err := tx.Model(&models.Report{}).
			Where("reporter_id = ? AND product_id = ? AND status = ?", p.UserID, productID, models.ReportPending).
			Count(&openCount).Error; err != nil {
			return apperr.Dependency(err, "failed to check open reports")
		}
		if openCount > 0 {
			return apperr.Conflict("you already have an open report on this listing")
		}

		var reporter models.User
		if err := tx.Select("name", "nickname").First(&reporter, "id = ?", p.UserID).Error; err != nil {
			return apperr.Dependency(err, "failed to load reporter")
		}

		open := true
		report = models.Report{
			ID:         uuid.New(),
			ReporterID: p.UserID,
			ProductID:  &productID,
			Reason:     reason,
			Content:    content,
			Status:     models.ReportPending,
			Open:       &open,
		}
		if err := tx.Create(&report).Error; err != nil {
			// Two concurrent submits race past the count above; the
			// unique index catches the loser.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("you already have an open report on this listing")
			}
			return apperr.Dependency(err, "failed to create report")
		}

		reporterName = reporter.Name
		productName = product.Name
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "report submit failed")
	}

	s.notifier.ReportSubmitted(reporterName, productName, reason)
	return &report, nil
}

// Process closes a pending report. Approving also removes the referenced
// product, but only when it is still active at process time: a listing
// that was sold, removed, or purged through another path keeps its state
// and the seller is not re-notified. A second call on the same report is
// an InvalidState error, never a silent success.
func (s *ReportService) Process(p principal.Principal, reportID uuid.UUID, action ReportAction, adminNote string) (*models.Report, error) {
	var newStatus models.ReportStatus
	switch action {
	case ReportActionApprove:
		newStatus = models.ReportApproved
	case ReportActionReject:
		newStatus = models.ReportRejected
	default:
		return nil, apperr.Validation("action must be approve or reject")
	}

	var report models.Report
	productName := "(deleted listing)"
	var removedSellerID *uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("report not found")
			}
			return apperr.Dependency(err, "failed to load report")
		}
		if report.Status != models.ReportPending {
			return apperr.InvalidState("report already processed")
		}

		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.ReportPending).
			Updates(map[string]interface{}{
				"status":     newStatus,
				"admin_note": adminNote,
				"open":       nil,
			})
		if res.Error != nil {
			return apperr.Dependency(res.Error, "failed to update report")
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("report already processed")
		}
		report.Status = newStatus
		report.AdminNote = adminNote
		report.Open = nil

		if report.ProductID == nil {
			return nil
		}
		var product models.Product
		if err := tx.First(&product, "id = ?", *report.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // product already purged; report outcome stands
			}
			return apperr.Dependency(err, "failed to load reported product")
		}
		productName = product.Name

		if action != ReportActionApprove {
			return nil
		}
		res = tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", product.ID, models.ProductActive).
			Update("status", models.ProductRemoved)
		if res.Error != nil {
			return apperr.Dependency(res.Error, "failed to remove reported product")
		}
		if res.RowsAffected > 0 {
			sellerID := product.SellerID
			removedSellerID = &sellerID
		}
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "report process failed")
	}

	switch newStatus {
	case models.ReportApproved:
		s.notifier.ReportApproved(report.ReporterID, productName, adminNote)
	case models.ReportRejected:
		s.notifier.ReportRejected(report.ReporterID, productName, adminNote)
	}
	if removedSellerID != nil {
		s.notifier.ProductRemoved(*removedSellerID, productName, adminNote)
	}
	return &report, nil
}

// Cancel withdraws a pending report. Only the original reporter may
// cancel, only while pending, and nobody gets notified.
func (s *ReportService) Cancel(p principal.Principal, reportID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("report not found")
			}
			return apperr.Dependency(err, "failed to load report")
		}
		if report.ReporterID != p.UserID {
			return apperr.InvalidState("only the reporter may cancel a report")
		}
		if report.Status != models.ReportPending {
			return apperr.InvalidState("only pending reports can be cancelled")
		}

		// Clear the open marker before soft-deleting so the unique index
		// never blocks a future report on the same listing.
		if err := tx.Model(&models.Report{}).Where("id = ?", reportID).
			Update("open", nil).Error; err != nil {
			return apperr.Dependency(err, "failed to close report")
		}
		if err := tx.Delete(&report).Error; err != nil {
			return apperr.Dependency(err, "failed to cancel report")
		}
		return nil
	})
	return serviceErr(err, "report cancel failed")
}

// ListMine returns the caller's reports, newest first.
func (s *ReportService) ListMine(p principal.Principal, page, limit int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{}).Where("reporter_id = ?", p.UserID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Dependency(err, "failed to count reports")
	}
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&reports).Error; err != nil {
		return nil, 0, apperr.Dependency(err, "failed to list reports")
	}
	return reports, total, nil
}

// ListAll is the admin review queue, filterable by status.
func (s *ReportService) ListAll(status models.ReportStatus, page, limit int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Dependency(err, "failed to count reports")
	}
	if err := query.Preload("Reporter").Preload("Product").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&reports).Error; err != nil {
		return nil, 0, apperr.Dependency(err, "failed to list reports")
	}
	return reports, total, nil
}
