package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newTestNotifier(db))
	alice := makeUser(t, db, models.RoleVerified, models.UserActive)
	bob := makeUser(t, db, models.RoleVerified, models.UserActive)

	msg, err := svc.Send(asPrincipal(alice), bob.ID, "is the lamp still for sale?")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.False(t, msg.IsRead)

	rows := notificationsFor(t, db, bob.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotifyNewMessage, rows[0].Type)

	_, err = svc.Send(asPrincipal(alice), alice.ID, "hi me")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	_, err = svc.Send(asPrincipal(alice), uuid.New(), "hello?")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.Send(asPrincipal(alice), bob.ID, "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestConversationMarksRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newTestNotifier(db))
	alice := makeUser(t, db, models.RoleVerified, models.UserActive)
	bob := makeUser(t, db, models.RoleVerified, models.UserActive)
	carol := makeUser(t, db, models.RoleVerified, models.UserActive)

	_, err := svc.Send(asPrincipal(alice), bob.ID, "hey")
	require.NoError(t, err)
	_, err = svc.Send(asPrincipal(bob), alice.ID, "hey back")
	require.NoError(t, err)
	_, err = svc.Send(asPrincipal(carol), bob.ID, "unrelated")
	require.NoError(t, err)

	count, err := svc.UnreadCount(asPrincipal(bob))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	thread, err := svc.Conversation(asPrincipal(bob), alice.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hey", thread[0].Content, "oldest first")

	// only alice's messages were marked read; carol's still counts
	count, err = svc.UnreadCount(asPrincipal(bob))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
