package domain

import "time"

// PhysicalStatus represents the physical condition of a billboard
type PhysicalStatus string

const (
	PhysicalOperational PhysicalStatus = "operational"
	PhysicalMaintenance PhysicalStatus = "maintenance"
	PhysicalDamaged     PhysicalStatus = "damaged"
)

// BillboardStatus represents the derived availability status of a billboard
type BillboardStatus string

const (
	BillboardAvailable   BillboardStatus = "available"
	BillboardOccupied    BillboardStatus = "occupied"
	BillboardMaintenance BillboardStatus = "maintenance"
)

// Billboard represents a physical advertising structure, the rentable resource
type Billboard struct {
	ID             int64
	TenantID       int64
	Name           string
	Location       string
	BasePrice      float64
	PhysicalStatus PhysicalStatus

	// Производный статус, персистится и пересчитывается после каждого
	// перехода бронирования (push-based синхронизация)
	Status BillboardStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOperational returns true if the billboard is physically usable
func (b *Billboard) IsOperational() bool {
	return b.PhysicalStatus == PhysicalOperational
}
