package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotifications(t *testing.T, db *gorm.DB, recipientID uuid.UUID, count int) []models.Notification {
	t.Helper()
	rows := make([]models.Notification, count)
	for i := range rows {
		rows[i] = models.Notification{
			ID:          uuid.New(),
			RecipientID: recipientID,
			Type:        models.NotifySystem,
			Title:       "hello",
		}
	}
	require.NoError(t, db.Create(&rows).Error)
	return rows
}

func TestNotificationInbox(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := makeUser(t, db, models.RoleVerified, models.UserActive)
	other := makeUser(t, db, models.RoleVerified, models.UserActive)
	mine := seedNotifications(t, db, user.ID, 3)
	seedNotifications(t, db, other.ID, 2)

	list, total, err := svc.List(asPrincipal(user), false, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 3)

	count, err := svc.UnreadCount(asPrincipal(user))
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, svc.MarkRead(asPrincipal(user), mine[0].ID))
	count, err = svc.UnreadCount(asPrincipal(user))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	unread, total, err := svc.List(asPrincipal(user), true, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, unread, 2)

	updated, err := svc.MarkAllRead(asPrincipal(user))
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	// the other inbox is untouched
	count, err = svc.UnreadCount(asPrincipal(other))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

// Every per-row operation is scoped to the recipient; another user's
// notification is indistinguishable from a missing one.
func TestNotificationOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	owner := makeUser(t, db, models.RoleVerified, models.UserActive)
	intruder := makeUser(t, db, models.RoleVerified, models.UserActive)
	rows := seedNotifications(t, db, owner.ID, 1)

	err := svc.MarkRead(asPrincipal(intruder), rows[0].ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.Delete(asPrincipal(intruder), rows[0].ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.Delete(asPrincipal(owner), rows[0].ID))
	err = svc.Delete(asPrincipal(owner), rows[0].ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
