// file: internals/features/finance/feestructures/model/fee_audit_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// =========================================================
// MODEL — audit event keuangan (append-only)
//
// Dipakai a.l. saat overwrite batch-apply: installment/payment lama yang
// ter-orphan dicatat di sini, bukan cuma warning di UI.
// =========================================================

type FeeAuditEventType string

const (
	FeeAuditEventStructureOverwritten FeeAuditEventType = "structure_overwritten"
	FeeAuditEventScheduleRegenerated  FeeAuditEventType = "schedule_regenerated"

	// Gateway menarik dana melebihi sisa tagihan saat settle (tagihan keburu
	// dibayar manual setelah link dibuat) — selisihnya butuh rekonsiliasi.
	FeeAuditEventGatewayOverCollection FeeAuditEventType = "gateway_over_collection"
)

type FeeAuditEvent struct {
	FeeAuditEventID uuid.UUID `gorm:"column:fee_audit_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_audit_event_id"`

	FeeAuditEventSchoolID uuid.UUID `gorm:"column:fee_audit_event_school_id;type:uuid;not null;index" json:"fee_audit_event_school_id"`

	FeeAuditEventType     FeeAuditEventType `gorm:"column:fee_audit_event_type;type:varchar(40);not null;index" json:"fee_audit_event_type"`
	FeeAuditEventEntityID uuid.UUID         `gorm:"column:fee_audit_event_entity_id;type:uuid;not null;index" json:"fee_audit_event_entity_id"`

	// Detail bebas (mis. daftar installment orphan) — JSONB
	FeeAuditEventPayload datatypes.JSON `gorm:"column:fee_audit_event_payload;type:jsonb" json:"fee_audit_event_payload,omitempty"`

	FeeAuditEventActorUserID *uuid.UUID `gorm:"column:fee_audit_event_actor_user_id;type:uuid" json:"fee_audit_event_actor_user_id,omitempty"`

	FeeAuditEventCreatedAt time.Time `gorm:"column:fee_audit_event_created_at;not null;autoCreateTime" json:"fee_audit_event_created_at"`
}

func (FeeAuditEvent) TableName() string {
	return "fee_audit_events"
}
