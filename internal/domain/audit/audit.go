package audit

import (
	"time"
)

// Category represents the type of audit event.
type Category string

const (
	CategoryProfile  Category = "profile"
	CategoryGame     Category = "game"
	CategoryEconomy  Category = "economy"
	CategoryMaterial Category = "material"
	CategorySecurity Category = "security"
	CategorySystem   Category = "system"
)

// Action represents the action that occurred.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionPublish Action = "publish"
	ActionLogin   Action = "login"
	ActionLogout  Action = "logout"
	ActionCredit  Action = "credit"
)

// Severity represents the severity level of an audit event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event represents a single audit log entry.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Category     Category  `json:"category"`
	Action       Action    `json:"action"`
	Severity     Severity  `json:"severity"`
	ActorID      string    `json:"actor_id"`
	ActorRole    string    `json:"actor_role"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	Description  string    `json:"description"`
	IPAddress    string    `json:"ip_address"`
}

// NewEvent creates a new audit event with the current timestamp. The caller
// supplies the ID so event identity stays testable.
// PRE: id and actorID are non-empty
// POST: Returns an Event with the current timestamp and provided fields
func NewEvent(id, actorID, actorRole string, category Category, action Action) Event {
	return Event{
		ID:        id,
		Timestamp: time.Now(),
		Category:  category,
		Action:    action,
		Severity:  SeverityInfo,
		ActorID:   actorID,
		ActorRole: actorRole,
	}
}

// WithSeverity sets the severity level.
// PRE: s is valid severity
// POST: Event severity is updated
func (e Event) WithSeverity(s Severity) Event {
	e.Severity = s
	return e
}

// WithResource sets resource information.
// PRE: resourceType and resourceID are non-empty
// POST: Event resource fields are populated
func (e Event) WithResource(resourceType, resourceID string) Event {
	e.ResourceType = resourceType
	e.ResourceID = resourceID
	return e
}

// WithDescription sets the event description.
// PRE: description is non-empty
// POST: Event description is set
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}

// WithRequest sets the originating IP address.
// PRE: ipAddress is non-empty
// POST: Event network field is populated
func (e Event) WithRequest(ipAddress string) Event {
	e.IPAddress = ipAddress
	return e
}
