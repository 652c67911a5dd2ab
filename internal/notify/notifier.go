// Package notify is the notification fan-out engine. It turns one logical
// event into one or many notification rows, resolving recipients fresh at
// send time. Delivery is best-effort: callers invoke it strictly after
// their transaction has committed, and every failure is logged and
// swallowed so it can never affect committed business state.
package notify

import (
	"log/slog"

	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type targetKind int

const (
	targetSingleUser targetKind = iota
	targetAdminGroup
	targetAllActiveUsers
)

// Target selects the recipient set of a send.
type Target struct {
	kind   targetKind
	userID uuid.UUID
}

func SingleUser(userID uuid.UUID) Target {
	return Target{kind: targetSingleUser, userID: userID}
}

// AdminGroup resolves active admins and super admins at call time, so a
// freshly promoted admin starts receiving sends immediately and a demoted
// one stops.
func AdminGroup() Target { return Target{kind: targetAdminGroup} }

// AllActiveUsers resolves every active, non-deleted account.
func AllActiveUsers() Target { return Target{kind: targetAllActiveUsers} }

type Notifier struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Notifier {
	return &Notifier{db: db}
}

// Send persists one notification row per resolved recipient. It never
// returns an error and never mutates anything besides notifications.
func (n *Notifier) Send(typ models.NotificationType, title, content string, target Target) {
	switch target.kind {
	case targetSingleUser:
		n.sendToUser(typ, title, content, target.userID)
	case targetAdminGroup:
		n.sendToRoles(typ, title, content, []models.Role{models.RoleAdmin, models.RoleSuperAdmin})
	case targetAllActiveUsers:
		n.sendToRoles(typ, title, content, nil)
	}
}

func (n *Notifier) sendToUser(typ models.NotificationType, title, content string, userID uuid.UUID) {
	var user models.User
	if err := n.db.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		slog.Warn("notification recipient not found, dropping", "recipient_id", userID, "type", typ)
		return
	}

	row := models.Notification{
		ID:          uuid.New(),
		RecipientID: userID,
		Type:        typ,
		Title:       title,
		Content:     content,
	}
	if err := n.db.Create(&row).Error; err != nil {
		slog.Warn("notification insert failed, dropping", "recipient_id", userID, "type", typ, "error", err)
	}
}

// sendToRoles bulk-inserts one row per recipient. An empty roles slice
// means every active user. A zero-recipient resolution is a no-op, not an
// error.
func (n *Notifier) sendToRoles(typ models.NotificationType, title, content string, roles []models.Role) {
	query := n.db.Model(&models.User{}).Where("status = ?", models.UserActive)
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}

	var recipientIDs []uuid.UUID
	if err := query.Pluck("id", &recipientIDs).Error; err != nil {
		slog.Warn("notification recipient resolution failed, dropping", "type", typ, "error", err)
		return
	}
	if len(recipientIDs) == 0 {
		return
	}

	rows := make([]models.Notification, len(recipientIDs))
	for i, id := range recipientIDs {
		rows[i] = models.Notification{
			ID:          uuid.New(),
			RecipientID: id,
			Type:        typ,
			Title:       title,
			Content:     content,
		}
	}

	if err := n.db.CreateInBatches(rows, insertBatchSize).Error; err != nil {
		slog.Warn("notification bulk insert failed, dropping", "type", typ, "recipients", len(rows), "error", err)
	}
}
