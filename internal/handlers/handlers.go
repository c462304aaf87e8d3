package handlers

import (
	"github.com/rentfolio/rentfolio-api/internal/config"
	"github.com/rentfolio/rentfolio-api/internal/services"
	"github.com/rentfolio/rentfolio-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Property     *PropertyHandler
	Transaction  *TransactionHandler
	Report       *ReportHandler
	Score        *ScoreHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, storage *storage.LocalStorage, cfg *config.Config) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.User),
		Property:     NewPropertyHandler(svcs.Property),
		Transaction:  NewTransactionHandler(svcs.Transaction, storage),
		Report:       NewReportHandler(svcs.Report, svcs.Export, cfg.ReportWindowMonths),
		Score:        NewScoreHandler(svcs.Score),
		Notification: NewNotificationHandler(svcs.Notification),
		Audit:        NewAuditHandler(svcs.Audit),
		Job:          NewJobHandler(svcs.Job),
	}
}
