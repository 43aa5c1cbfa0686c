package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Garage is the provider-directory view the scheduling core reads. The
// directory itself (search, registration, verification) lives outside this
// service; the core only consumes the catalog and operating rules.
type Garage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Services       []GarageService `gorm:"foreignKey:GarageID" json:"services,omitempty"`
	OperatingRules []OperatingRule `gorm:"foreignKey:GarageID" json:"operating_rules,omitempty"`
}

func (Garage) TableName() string {
	return "garages"
}

// GarageService is a catalog entry customers pick from. Inactive services
// are unselectable; selecting one is a validation failure, not a silent
// skip.
type GarageService struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GarageID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"garage_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Active          bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GarageService) TableName() string {
	return "garage_services"
}

// Snapshot copies the catalog entry into an immutable booking line.
func (s *GarageService) Snapshot() ServiceLine {
	return ServiceLine{
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

// OperatingRule is one weekday row of a garage's operating-hours policy.
// Weekday follows time.Weekday numbering (Sunday = 0). Garages without
// rows fall back to the marketplace-wide policy from configuration.
type OperatingRule struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GarageID    uuid.UUID `gorm:"type:uuid;not null;index:idx_operating_rules_garage_weekday,unique" json:"garage_id"`
	Weekday     int       `gorm:"not null;index:idx_operating_rules_garage_weekday,unique" json:"weekday"`
	IsOpen      bool      `gorm:"not null" json:"is_open"`
	OpenHour    int       `gorm:"not null" json:"open_hour"`
	CloseHour   int       `gorm:"not null" json:"close_hour"`
	StepMinutes int       `gorm:"not null" json:"step_minutes"`
}

func (OperatingRule) TableName() string {
	return "garage_operating_rules"
}
