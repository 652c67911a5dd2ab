package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNoticeBroadcasts(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoticeService(db, newTestNotifier(db))
	admin := makeUser(t, db, models.RoleAdmin, models.UserActive)
	student := makeUser(t, db, models.RoleVerified, models.UserActive)
	frozen := makeUser(t, db, models.RoleVerified, models.UserFrozen)

	notice, err := svc.Create(asPrincipal(admin), &dto.NoticeRequest{
		Title:   "Semester kickoff market",
		Content: "Trade-in day this Saturday at the student center.",
	})
	require.NoError(t, err)
	assert.True(t, notice.IsActive)

	// every active user hears it, frozen accounts do not
	assert.Len(t, notificationsFor(t, db, student.ID), 1)
	assert.Len(t, notificationsFor(t, db, admin.ID), 1)
	assert.Empty(t, notificationsFor(t, db, frozen.ID))
}

func TestCreateInactiveNoticeSilent(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoticeService(db, newTestNotifier(db))
	admin := makeUser(t, db, models.RoleAdmin, models.UserActive)
	student := makeUser(t, db, models.RoleVerified, models.UserActive)

	inactive := false
	notice, err := svc.Create(asPrincipal(admin), &dto.NoticeRequest{
		Title:    "Draft",
		Content:  "not published yet",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, notice.IsActive)
	assert.Empty(t, notificationsFor(t, db, student.ID))

	_, err = svc.Create(asPrincipal(admin), &dto.NoticeRequest{Title: "  ", Content: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestNoticeLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoticeService(db, newTestNotifier(db))
	admin := makeUser(t, db, models.RoleAdmin, models.UserActive)

	notice, err := svc.Create(asPrincipal(admin), &dto.NoticeRequest{
		Title: "Maintenance", Content: "down tonight",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(asPrincipal(admin), notice.ID, &dto.NoticeRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	notices, total, err := svc.ListActive(1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, notices)

	require.NoError(t, svc.Delete(asPrincipal(admin), notice.ID))
	err = svc.Delete(asPrincipal(admin), notice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
