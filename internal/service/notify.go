package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
	"nemukerja/pkg/utils"
)

// Notifier appends workflow events to recipients' inboxes and serves the
// polling side. Emit is deliberately best-effort: it runs after the
// triggering operation has committed, and a failed append degrades to
// "action succeeded without notification" instead of failing the action.
type Notifier struct {
	repos  *repo.Repos
	logger *zap.Logger
}

func NewNotifier(repos *repo.Repos, logger *zap.Logger) *Notifier {
	return &Notifier{repos: repos, logger: logger.Named("notifier")}
}

func (n *Notifier) Emit(ctx context.Context, userID, title, message, typ string, relatedID *string) {
	notif := &domain.Notification{
		ID:        utils.NewID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		RelatedID: relatedID,
	}
	if err := n.repos.Notifications.Create(ctx, notif); err != nil {
		n.logger.Warn("notification append failed",
			zap.String("user_id", userID),
			zap.String("type", typ),
			zap.Error(err),
		)
	}
}

// Latest returns the recipient's newest notifications, unread first in
// arrival order.
func (n *Notifier) Latest(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error) {
	if !actor.Can(domain.CapOwnInbox) {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return n.repos.Notifications.Latest(ctx, actor.UserID, limit)
}

// MarkRead flips a single notification. Only the recipient may touch it.
func (n *Notifier) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	notif, err := n.repos.Notifications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil {
		return fmt.Errorf("%w: notification", domain.ErrNotFound)
	}
	if notif.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	return n.repos.Notifications.MarkRead(ctx, id)
}

func (n *Notifier) MarkAllRead(ctx context.Context, actor domain.Actor) error {
	return n.repos.Notifications.MarkAllRead(ctx, actor.UserID)
}

func (n *Notifier) ClearAll(ctx context.Context, actor domain.Actor) error {
	return n.repos.Notifications.DeleteAll(ctx, actor.UserID)
}

// RelatedJobID resolves an application-typed notification to its job so the
// client can navigate. Only the recipient may follow the link, and they must
// still be a party to the application: the applicant it belongs to, or the
// company that owns the job.
func (n *Notifier) RelatedJobID(ctx context.Context, actor domain.Actor, notificationID string) (string, error) {
	notif, err := n.repos.Notifications.FindByID(ctx, notificationID)
	if err != nil {
		return "", err
	}
	if notif == nil {
		return "", fmt.Errorf("%w: notification", domain.ErrNotFound)
	}
	if notif.UserID != actor.UserID {
		return "", domain.ErrForbidden
	}
	if notif.RelatedID == nil {
		return "", fmt.Errorf("%w: notification has no related application", domain.ErrNotFound)
	}
	app, err := n.repos.Applications.FindByID(ctx, *notif.RelatedID)
	if err != nil {
		return "", err
	}
	if app == nil {
		return "", fmt.Errorf("%w: application", domain.ErrNotFound)
	}
	switch actor.Role {
	case domain.RoleApplicant:
		prof, err := n.repos.Applicants.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return "", err
		}
		if prof == nil || app.ApplicantID != prof.ID {
			return "", domain.ErrForbidden
		}
	case domain.RoleCompany:
		if app.Job == nil || app.Job.Company == nil || app.Job.Company.UserID != actor.UserID {
			return "", domain.ErrForbidden
		}
	default:
		return "", domain.ErrForbidden
	}
	return app.JobID, nil
}
