package leaseaction

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ActionType string

const (
	TypeLeaseCreated     ActionType = "lease_created"
	TypeRenewalOfferSent ActionType = "renewal_offer_sent"
	TypeRenewalAccepted  ActionType = "renewal_accepted"
	TypeRenewalDeclined  ActionType = "renewal_declined"
	TypeNoticeReceived   ActionType = "notice_received"
	TypeNonRenewalSent   ActionType = "non_renewal_sent"
	TypeMoveOut          ActionType = "move_out"
	TypeLeaseTerminated  ActionType = "lease_terminated"
	TypeNote             ActionType = "note"
	TypeTransferOut      ActionType = "transfer_out"
	TypeTransferIn       ActionType = "transfer_in"
)

// Metadata carries the typed payload an action was applied with, so the
// log alone is enough to rebuild the lease's mutable fields.
type Metadata struct {
	NoticeType  string `json:"notice_type,omitempty"`
	MoveOutDate string `json:"move_out_date,omitempty"` // YYYY-MM-DD
	LeaseStart  string `json:"lease_start,omitempty"`   // transfer_in only
	LeaseEnd    string `json:"lease_end,omitempty"`     // transfer_in only
}

const DateLayout = "2006-01-02"

// LeaseAction is one immutable entry of a lease's audit log. ID doubles as
// the insertion sequence and breaks ties between equal PerformedAt values.
type LeaseAction struct {
	ID              uint64                       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ActionID        string                       `gorm:"column:action_id;size:32;not null;uniqueIndex:ux_lease_actions_action_id" json:"action_id"`
	LeaseID         string                       `gorm:"column:lease_id;size:32;not null;index:idx_lease_actions_lease_performed,priority:1" json:"lease_id"`
	RelatedLeaseID  *string                      `gorm:"column:related_lease_id;size:32;index" json:"related_lease_id,omitempty"`
	ActionType      ActionType                   `gorm:"column:action_type;size:32;not null" json:"action_type"`
	Description     *string                      `gorm:"column:description;type:text" json:"description,omitempty"`
	OldRent         decimal.NullDecimal          `gorm:"column:old_rent;type:decimal(12,2)" json:"old_rent"`
	NewRent         decimal.NullDecimal          `gorm:"column:new_rent;type:decimal(12,2)" json:"new_rent"`
	Metadata        datatypes.JSONType[Metadata] `gorm:"column:metadata" json:"metadata"`
	PerformedAt     time.Time                    `gorm:"column:performed_at;not null;index:idx_lease_actions_lease_performed,priority:2" json:"performed_at"`
	PerformedBy     string                       `gorm:"column:performed_by;size:64;not null" json:"performed_by"`
	PerformedByName string                       `gorm:"column:performed_by_name;size:255;not null" json:"performed_by_name"`
}

func (LeaseAction) TableName() string { return "lease_actions" }

func (a *LeaseAction) Meta() Metadata { return a.Metadata.Data() }
