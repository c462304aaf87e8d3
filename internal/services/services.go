package services

import (
	"github.com/rentfolio/rentfolio-api/internal/config"
	"github.com/rentfolio/rentfolio-api/internal/jobs"
	"github.com/rentfolio/rentfolio-api/internal/opmetrics"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/scoring"
	"github.com/rentfolio/rentfolio-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Property     *PropertyService
	Transaction  *TransactionService
	Report       *ReportService
	Score        *ScoreService
	Export       *ExportService
	Notification *NotificationService
	Email        *EmailService
	Audit        *AuditService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(db)

	scoreSvc := NewScoreService(repos.Property, notificationSvc, scoring.DefaultConfig())
	reportSvc := NewReportService(repos.Transaction, repos.Property, repos.User, emailSvc, opmetrics.DefaultConfig())

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, worker, emailSvc, auditSvc),
		Property:     NewPropertyService(repos.Property, repos.Unit, notificationSvc, auditSvc),
		Transaction:  NewTransactionService(repos.Transaction, repos.Property, storage, auditSvc),
		Report:       reportSvc,
		Score:        scoreSvc,
		Export:       NewExportService(reportSvc, scoreSvc, repos.Property),
		Notification: notificationSvc,
		Email:        emailSvc,
		Audit:        auditSvc,
		Job:          NewJobService(worker),
	}
}
