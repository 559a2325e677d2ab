package entity

// BuildComponent is the join row between builds and components.
type BuildComponent struct {
	BuildID     uint `gorm:"primaryKey" json:"build_id"`
	ComponentID uint `gorm:"primaryKey" json:"component_id"`
}
