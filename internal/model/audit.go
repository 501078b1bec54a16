package model

import "time"

// AuditAction is the closed set of audit tags.
type AuditAction string

const (
	ActionCreate               AuditAction = "CREATE"
	ActionUpdate               AuditAction = "UPDATE"
	ActionDelete               AuditAction = "DELETE"
	ActionValidate             AuditAction = "VALIDATE"
	ActionPrint                AuditAction = "PRINT"
	ActionCancel               AuditAction = "CANCEL"
	ActionLogin                AuditAction = "LOGIN"
	ActionLogout               AuditAction = "LOGOUT"
	ActionActivate             AuditAction = "ACTIVATE"
	ActionDeactivate           AuditAction = "DEACTIVATE"
	ActionPasswordChange       AuditAction = "PASSWORD_CHANGE"
	ActionPasswordResetRequest AuditAction = "PASSWORD_RESET_REQUEST"
)

// Entity types recorded in audit_logs.entity_type.
const (
	EntityUser           = "User"
	EntityVille          = "Ville"
	EntityArrondissement = "Arrondissement"
	EntityMairie         = "Mairie"
	EntityMariage        = "Mariage"
	EntityActe           = "ActeMariage"
)

// AuditLog is one append-only audit row. OldValues and NewValues hold
// JSON-encoded display snapshots, not full rows.
type AuditLog struct {
	ID          uint64      `json:"id"`
	UserID      *uint64     `json:"userId"`
	MairieID    *uint64     `json:"mairieId"`
	Action      AuditAction `json:"action"`
	EntityType  string      `json:"entityType"`
	EntityID    *uint64     `json:"entityId"`
	OldValues   *string     `json:"oldValues"`
	NewValues   *string     `json:"newValues"`
	Description *string     `json:"description"`
	IPAddress   *string     `json:"ipAddress"`
	UserAgent   *string     `json:"userAgent"`
	CreatedAt   time.Time   `json:"createdAt"`

	User   *UserRef   `json:"user,omitempty"`
	Mairie *MairieRef `json:"mairie,omitempty"`
}
