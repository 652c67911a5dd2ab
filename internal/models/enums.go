package models

// Closed enumerations for every state column. Stored as strings but only
// ever compared through these constants so an added state shows up in
// every switch.

type Role string

const (
	RoleUnverified Role = "unverified"
	RoleVerified   Role = "verified"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUnverified, RoleVerified, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin covers both admin tiers; the AdminGroup fan-out target and the
// admin middleware use the same definition.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
	UserFrozen   UserStatus = "frozen"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserDisabled, UserFrozen:
		return true
	}
	return false
}

type ProductStatus string

const (
	ProductActive  ProductStatus = "active"
	ProductRemoved ProductStatus = "removed"
	ProductSold    ProductStatus = "sold"
	// ProductDeleted is terminal; the row is also soft-deleted so it
	// disappears from every listing.
	ProductDeleted ProductStatus = "deleted"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductActive, ProductRemoved, ProductSold, ProductDeleted:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
)

type NotificationType string

const (
	NotifySystem          NotificationType = "SYSTEM"
	NotifyProductRemoved  NotificationType = "PRODUCT_REMOVED"
	NotifyProductRestored NotificationType = "PRODUCT_RESTORED"
	NotifyNewComment      NotificationType = "NEW_COMMENT"
	NotifyNewMessage      NotificationType = "NEW_MESSAGE"
	NotifyReportSubmitted NotificationType = "REPORT_SUBMITTED"
	NotifyReportResult    NotificationType = "REPORT_RESULT"
	NotifyRoleChanged     NotificationType = "ROLE_CHANGED"
	NotifyAccountStatus   NotificationType = "ACCOUNT_STATUS"
)
