package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"github.com/thebagdis/storefront/pkg/sendgrid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo  repository.NotificationRepository
	email sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, email sendgrid.EmailService) *NotificationService {
	return &NotificationService{repo: repo, email: email}
}

// SendEmail records the notification, attempts delivery and updates the
// record with the outcome.
func (s *NotificationService) SendEmail(ctx context.Context, userID primitive.ObjectID, req *models.EmailNotificationRequest) (*models.Notification, error) {
	logger := middleware.LoggerFromContext(ctx)

	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotificationTypeEmail,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification").WithError(err)
	}

	if err := s.email.Send(ctx, req); err != nil {
		notification.Status = models.StatusFailed
		notification.Error = err.Error()

		if updateErr := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed); updateErr != nil {
			logger.Warn("Failed to mark notification as failed", slog.Any("error", updateErr))
		}

		return notification, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	now := time.Now()
	notification.Status = models.StatusSent
	notification.SentAt = &now

	if err := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent); err != nil {
		logger.Warn("Failed to mark notification as sent", slog.Any("error", err))
	}

	return notification, nil
}

// SendOrderConfirmation emails the buyer after a successful checkout. Callers
// treat a failure as non-fatal; the order already exists.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	totals := order.TotalAmount.Round(2)

	req := &models.EmailNotificationRequest{
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Order confirmed: %s", order.ID.Hex()),
		Content: fmt.Sprintf(
			"Hi %s,\n\nYour order %s has been placed.\nItems: %d\nTotal: %s\nPayment method: %s\n\nThank you for shopping with us.",
			user.Name, order.ID.Hex(), len(order.Items), totals.StringFixed(2), order.PaymentMethod),
	}

	_, err := s.SendEmail(ctx, user.ID, req)

	return err
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID primitive.ObjectID, page, size int) ([]models.Notification, int, error) {
	notifications, total, err := s.repo.ListNotificationsByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}
