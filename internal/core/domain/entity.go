package domain

import (
	"fmt"
	"strings"
)

// EntityType identifies the kind of entity a search result points at.
// It drives navigation: surface routing and situation creation key off it.
type EntityType string

const (
	// EntityTypeDocument is a manual, certificate, or other document (or a chunk of one).
	EntityTypeDocument EntityType = "document"
	// EntityTypeEquipment is a piece of installed equipment or a system component.
	EntityTypeEquipment EntityType = "equipment"
	// EntityTypePart is a spare part.
	EntityTypePart EntityType = "part"
	// EntityTypeWorkOrder is a scheduled or corrective maintenance job.
	EntityTypeWorkOrder EntityType = "work_order"
	// EntityTypeFault is a reported defect or alarm.
	EntityTypeFault EntityType = "fault"
	// EntityTypeInventory is a stock item or stock location.
	EntityTypeInventory EntityType = "inventory"
	// EntityTypeEmailThread is a correspondence thread.
	EntityTypeEmailThread EntityType = "email_thread"
)

// Domain is the coarse grouping bucket used to present search results.
type Domain string

const (
	// DomainManuals groups documents, manuals and certificates.
	DomainManuals Domain = "manuals"
	// DomainMaintenance groups equipment, work orders and faults.
	DomainMaintenance Domain = "maintenance"
	// DomainInventory groups parts and stock items.
	DomainInventory Domain = "inventory"
	// DomainEmail groups correspondence threads.
	DomainEmail Domain = "email"
)

// typeTags is the canonical type-tag → entity-type table. Both the grouper
// and the surface coordinator classify through it; there is deliberately no
// second switch-on-string anywhere else.
var typeTags = map[string]EntityType{
	"document":     EntityTypeDocument,
	"doc_chunk":    EntityTypeDocument,
	"manual":       EntityTypeDocument,
	"certificate":  EntityTypeDocument,
	"drawing":      EntityTypeDocument,
	"equipment":    EntityTypeEquipment,
	"component":    EntityTypeEquipment,
	"system":       EntityTypeEquipment,
	"part":         EntityTypePart,
	"spare":        EntityTypePart,
	"spare_part":   EntityTypePart,
	"work_order":   EntityTypeWorkOrder,
	"workorder":    EntityTypeWorkOrder,
	"task":         EntityTypeWorkOrder,
	"job":          EntityTypeWorkOrder,
	"fault":        EntityTypeFault,
	"defect":       EntityTypeFault,
	"alert":        EntityTypeFault,
	"inventory":    EntityTypeInventory,
	"stock":        EntityTypeInventory,
	"stock_item":   EntityTypeInventory,
	"email":        EntityTypeEmailThread,
	"email_thread": EntityTypeEmailThread,
	"message":      EntityTypeEmailThread,
}

// entityDomains maps every entity type to its display domain.
var entityDomains = map[EntityType]Domain{
	EntityTypeDocument:    DomainManuals,
	EntityTypeEquipment:   DomainMaintenance,
	EntityTypeWorkOrder:   DomainMaintenance,
	EntityTypeFault:       DomainMaintenance,
	EntityTypePart:        DomainInventory,
	EntityTypeInventory:   DomainInventory,
	EntityTypeEmailThread: DomainEmail,
}

// ClassifyTypeTag maps a backend type tag to an entity type.
// Unrecognised tags resolve to EntityTypeDocument; the mapping is total.
func ClassifyTypeTag(tag string) EntityType {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if t, ok := typeTags[tag]; ok {
		return t
	}
	return EntityTypeDocument
}

// ParseEntityType converts a string to a known EntityType.
// Unrecognised values resolve to EntityTypeDocument.
func ParseEntityType(s string) EntityType {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := entityDomains[t]; ok {
		return t
	}
	return EntityTypeDocument
}

// LookupEntityType converts a string to a known EntityType, rejecting
// unrecognised values. Driving adapters use it to validate user input;
// backend payloads go through the forgiving ParseEntityType instead.
func LookupEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := entityDomains[t]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// Domain returns the display domain for the entity type.
// Unknown entity types resolve to DomainManuals.
func (t EntityType) Domain() Domain {
	if d, ok := entityDomains[t]; ok {
		return d
	}
	return DomainManuals
}

// Label returns the human-readable name for the entity type.
func (t EntityType) Label() string {
	switch t {
	case EntityTypeDocument:
		return "Document"
	case EntityTypeEquipment:
		return "Equipment"
	case EntityTypePart:
		return "Part"
	case EntityTypeWorkOrder:
		return "Work Order"
	case EntityTypeFault:
		return "Fault"
	case EntityTypeInventory:
		return "Inventory"
	case EntityTypeEmailThread:
		return "Email Thread"
	default:
		return "Document"
	}
}

// Label returns the human-readable name for the domain.
func (d Domain) Label() string {
	switch d {
	case DomainManuals:
		return "Manuals & Documents"
	case DomainMaintenance:
		return "Maintenance"
	case DomainInventory:
		return "Inventory & Parts"
	case DomainEmail:
		return "Email"
	default:
		return "Manuals & Documents"
	}
}

// AllEntityTypes returns the known entity types in a stable order.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeDocument,
		EntityTypeEquipment,
		EntityTypePart,
		EntityTypeWorkOrder,
		EntityTypeFault,
		EntityTypeInventory,
		EntityTypeEmailThread,
	}
}

// AllDomains returns the known domains in a stable order.
func AllDomains() []Domain {
	return []Domain{DomainManuals, DomainMaintenance, DomainInventory, DomainEmail}
}
