package lease

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusRenewed     Status = "renewed"
	StatusTransferred Status = "transferred"
	StatusTerminated  Status = "terminated"
	StatusExpired     Status = "expired"
)

// Terminal statuses cannot be transferred out of.
func (s Status) Terminal() bool {
	return s == StatusTerminated || s == StatusTransferred
}

type RenewalStatus string

const (
	RenewalPending     RenewalStatus = "pending"
	RenewalOfferSent   RenewalStatus = "offer_sent"
	RenewalAccepted    RenewalStatus = "accepted"
	RenewalDeclined    RenewalStatus = "declined"
	RenewalNotRenewing RenewalStatus = "not_renewing"
)

type Term string

const (
	TermFixed        Term = "fixed"
	TermMonthToMonth Term = "month_to_month"
)

func (t Term) Valid() bool { return t == TermFixed || t == TermMonthToMonth }

type NoticeType string

const (
	NoticeTenant     NoticeType = "tenant_notice"
	NoticeNonRenewal NoticeType = "non_renewal"
)

func (n NoticeType) Valid() bool { return n == NoticeTenant || n == NoticeNonRenewal }

// Lease is one rental contract on one unit. Rows are never deleted; a lease
// ends by moving to a terminal status.
type Lease struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	LeaseID string `gorm:"size:32;uniqueIndex:ux_leases_lease_id" json:"lease_id"`
	UnitID  string `gorm:"size:32;not null;index:idx_leases_unit_status" json:"unit_id"`

	// Tenant identity is a snapshot taken at creation, not a live reference.
	TenantName  string  `gorm:"size:255;not null" json:"tenant_name"`
	TenantEmail *string `gorm:"size:255" json:"tenant_email,omitempty"`
	TenantPhone *string `gorm:"size:64" json:"tenant_phone,omitempty"`

	LeaseStart      time.Time           `gorm:"type:date;not null" json:"lease_start"`
	LeaseEnd        *time.Time          `gorm:"type:date;index:idx_leases_status_end" json:"lease_end,omitempty"`
	LeaseTerm       Term                `gorm:"size:16;not null;default:fixed" json:"lease_term"`
	MonthlyRent     decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"monthly_rent"`
	SecurityDeposit decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"security_deposit"`

	Status        Status        `gorm:"size:16;not null;default:active;index:idx_leases_unit_status;index:idx_leases_status_end" json:"status"`
	RenewalStatus RenewalStatus `gorm:"size:16;not null;default:pending" json:"renewal_status"`

	RenewalOfferRent   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"renewal_offer_rent"`
	RenewalOfferSentAt *time.Time          `json:"renewal_offer_sent_at,omitempty"`
	RenewalResponseAt  *time.Time          `json:"renewal_response_at,omitempty"`
	NoticeGivenAt      *time.Time          `json:"notice_given_at,omitempty"`
	NoticeType         *NoticeType         `gorm:"size:16" json:"notice_type,omitempty"`
	MoveInDate         *time.Time          `gorm:"type:date" json:"move_in_date,omitempty"`
	MoveOutDate        *time.Time          `gorm:"type:date" json:"move_out_date,omitempty"`

	CreatedBy string    `gorm:"size:32" json:"created_by"`
	Version   uint64    `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Lease) TableName() string { return "leases" }

// CheckDates enforces lease_end > lease_start. Fixed-term leases must have an end.
func (l *Lease) CheckDates() error {
	if l.LeaseStart.IsZero() {
		return ValidationError("lease_start is required")
	}
	if l.LeaseEnd == nil {
		if l.LeaseTerm == TermFixed {
			return ValidationError("lease_end is required for fixed-term leases")
		}
		return nil
	}
	if !l.LeaseEnd.After(l.LeaseStart) {
		return ValidationError("lease_end must be after lease_start")
	}
	return nil
}

// Date truncates t to its UTC calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
