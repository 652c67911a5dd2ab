package notify

import (
	"fmt"

	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
)

// Typed send helpers so the message wording lives in one place instead of
// being re-derived at every call site.

func (n *Notifier) ReportSubmitted(reporterName, productName, reason string) {
	n.Send(models.NotifyReportSubmitted,
		"New report pending review",
		fmt.Sprintf("%s reported the listing %q: %s", reporterName, productName, reason),
		AdminGroup())
}

func (n *Notifier) ReportApproved(reporterID uuid.UUID, productName, adminNote string) {
	content := fmt.Sprintf("Your report on %q was approved and acted on.", productName)
	if adminNote != "" {
		content += " Note: " + adminNote
	}
	n.Send(models.NotifyReportResult, "Report approved", content, SingleUser(reporterID))
}

func (n *Notifier) ReportRejected(reporterID uuid.UUID, productName, adminNote string) {
	content := fmt.Sprintf("Your report on %q was reviewed and rejected.", productName)
	if adminNote != "" {
		content += " Note: " + adminNote
	}
	n.Send(models.NotifyReportResult, "Report rejected", content, SingleUser(reporterID))
}

func (n *Notifier) ProductRemoved(sellerID uuid.UUID, productName, reason string) {
	content := fmt.Sprintf("Your listing %q was removed by an administrator.", productName)
	if reason != "" {
		content += " Reason: " + reason
	}
	n.Send(models.NotifyProductRemoved, "Listing removed", content, SingleUser(sellerID))
}

func (n *Notifier) ProductRestored(sellerID uuid.UUID, productName string) {
	n.Send(models.NotifyProductRestored,
		"Listing restored",
		fmt.Sprintf("Your listing %q has been restored and is visible again.", productName),
		SingleUser(sellerID))
}

func (n *Notifier) RoleChanged(userID uuid.UUID, newRole models.Role) {
	n.Send(models.NotifyRoleChanged,
		"Account role updated",
		fmt.Sprintf("Your account role is now %q.", newRole),
		SingleUser(userID))
}

func (n *Notifier) AccountStatusChanged(userID uuid.UUID, status models.UserStatus, reason string) {
	var title, content string
	switch status {
	case models.UserDisabled:
		title = "Account disabled"
		content = "Your account has been disabled by an administrator."
	case models.UserFrozen:
		title = "Account frozen"
		content = "Your account has been frozen by an administrator."
	case models.UserActive:
		title = "Account restored"
		content = "Your account is active again and all features are available."
	default:
		return
	}
	if reason != "" && status != models.UserActive {
		content += " Reason: " + reason
	}
	n.Send(models.NotifyAccountStatus, title, content, SingleUser(userID))
}

func (n *Notifier) Welcome(userID uuid.UUID, name string) {
	n.Send(models.NotifySystem,
		"Welcome to the campus marketplace!",
		fmt.Sprintf("%s, welcome aboard! List your unused items, find what you need, and trade safely on campus.", name),
		SingleUser(userID))
}

func (n *Notifier) Announcement(title, content string) {
	n.Send(models.NotifySystem, "Announcement: "+title, content, AllActiveUsers())
}

func (n *Notifier) NewComment(sellerID uuid.UUID, productName, commenterName, preview string) {
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	n.Send(models.NotifyNewComment,
		"New comment on your listing",
		fmt.Sprintf("%s commented on %q: %s", commenterName, productName, preview),
		SingleUser(sellerID))
}

func (n *Notifier) NewMessage(receiverID uuid.UUID, senderName string) {
	n.Send(models.NotifyNewMessage,
		"New message",
		fmt.Sprintf("You have a new message from %s.", senderName),
		SingleUser(receiverID))
}
