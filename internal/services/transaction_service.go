package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/storage"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
)

type TransactionService struct {
	repo         repository.TransactionRepository
	propertyRepo repository.PropertyRepository
	storage      *storage.LocalStorage
	auditSvc     *AuditService
}

func NewTransactionService(
	repo repository.TransactionRepository,
	propertyRepo repository.PropertyRepository,
	storage *storage.LocalStorage,
	auditSvc *AuditService,
) *TransactionService {
	return &TransactionService{
		repo:         repo,
		propertyRepo: propertyRepo,
		storage:      storage,
		auditSvc:     auditSvc,
	}
}

func (s *TransactionService) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
	return s.repo.List(ctx, query)
}

// validateDates checks the transaction's date strings parse as YYYY-MM-DD
func validateDates(transaction *models.Transaction) error {
	if _, err := time.Parse("2006-01-02", transaction.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, transaction.Date)
	}
	if transaction.OverrideDate != nil && *transaction.OverrideDate != "" {
		if _, err := time.Parse("2006-01-02", *transaction.OverrideDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, *transaction.OverrideDate)
		}
	}
	return nil
}

func (s *TransactionService) Create(ctx context.Context, transaction *models.Transaction, userID uint) error {
	if err := validateDates(transaction); err != nil {
		return err
	}
	if transaction.Category == "" {
		return fmt.Errorf("category is required")
	}
	if transaction.ExpenseType == "" {
		transaction.ExpenseType = models.ExpenseTypeOperating
	}

	// Property assignment is optional, but a given ID must exist
	if transaction.PropertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, *transaction.PropertyID); err != nil {
			return fmt.Errorf("failed to find property %d: %w", *transaction.PropertyID, err)
		}
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	s.auditSvc.Log(ctx, userID, "CREATE", "Transaction", transaction.ID,
		fmt.Sprintf("amount=%.2f category=%s", transaction.Amount, transaction.Category), "", "")
	return nil
}

func (s *TransactionService) Update(ctx context.Context, transaction *models.Transaction, userID uint) error {
	existing, err := s.repo.FindByID(ctx, transaction.ID)
	if err != nil {
		return err
	}

	if transaction.Date == "" {
		transaction.Date = existing.Date
	}
	if transaction.Category == "" {
		transaction.Category = existing.Category
	}
	if transaction.ExpenseType == "" {
		transaction.ExpenseType = existing.ExpenseType
	}
	if transaction.OverrideDate == nil {
		transaction.OverrideDate = existing.OverrideDate
	}
	if transaction.Description == nil {
		transaction.Description = existing.Description
	}
	// Receipts are attached through AttachReceipt
	transaction.ReceiptPath = existing.ReceiptPath

	if err := validateDates(transaction); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, transaction); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	s.auditSvc.Log(ctx, userID, "UPDATE", "Transaction", transaction.ID, "", "", "")
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, id uint, userID uint) error {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	// Best effort cleanup of the stored receipt
	if transaction.ReceiptPath != nil && *transaction.ReceiptPath != "" {
		if err := s.storage.Delete(*transaction.ReceiptPath); err != nil {
			logger.Error(fmt.Sprintf("[TransactionService] Error deleting receipt for transaction %d: %v", id, err))
		}
	}

	s.auditSvc.Log(ctx, userID, "DELETE", "Transaction", id, "", "", "")
	return nil
}

// AttachReceipt stores an uploaded receipt file and links it to the
// transaction
func (s *TransactionService) AttachReceipt(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader, userID uint) (*models.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if header.Size > storage.MaxFileSize() {
		return nil, fmt.Errorf("file too large: %d bytes", header.Size)
	}
	if !storage.IsValidContentType(header.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("unsupported content type: %s", header.Header.Get("Content-Type"))
	}

	path, err := s.storage.Upload(file, header, "receipts")
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	// Replace a previous receipt if one exists
	if transaction.ReceiptPath != nil && *transaction.ReceiptPath != "" {
		if err := s.storage.Delete(*transaction.ReceiptPath); err != nil {
			logger.Error(fmt.Sprintf("[TransactionService] Error deleting old receipt for transaction %d: %v", id, err))
		}
	}

	transaction.ReceiptPath = &path
	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to link receipt: %w", err)
	}

	s.auditSvc.Log(ctx, userID, "RECEIPT", "Transaction", id, path, "", "")
	return transaction, nil
}
