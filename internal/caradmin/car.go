// Package caradmin describes the car change form served by the admin preview.
package caradmin

import (
	"strings"
	"time"

	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
)

// Organization owns cars and their station configuration.
type Organization struct {
	ID       int
	Name     string
	Stations []StationConfig
}

// StationConfig is one workflow station a car moves through.
type StationConfig struct {
	Name            string
	DefaultStatus   string
	AllowedStatuses []string
}

// Car mirrors the stored car record. JSON columns hold parsed JSON values.
type Car struct {
	OrganizationID     int
	Make               string
	Model              string
	RegistrationNumber string
	Color              string
	Year               int
	Mileage            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	IsActive           bool
	IsArchived         bool
	IsDeleted          bool

	StationFields *jsonfmt.Object
	Metadata      *jsonfmt.Object
	Tags          []any
	Notes         []any
	Messages      []any
	CustomCarInfo []any
}

// NewCar returns a car with column defaults for org. Each configured station
// starts in its default status with an empty history.
func NewCar(org Organization) Car {
	car := Car{
		OrganizationID: org.ID,
		Color:          "Not specified",
		IsActive:       true,
		StationFields:  jsonfmt.NewObject(),
		Metadata:       jsonfmt.NewObject(),
		Tags:           []any{},
		Notes:          []any{},
		Messages:       []any{},
		CustomCarInfo:  []any{},
	}
	for _, station := range org.Stations {
		name := strings.ToLower(station.Name)
		if _, exists := car.StationFields.Get(name); exists {
			continue
		}
		entry := jsonfmt.NewObject()
		entry.Set("status", station.DefaultStatus)
		entry.Set("timestamp", nil)
		entry.Set("history", []any{})
		car.StationFields.Set(name, entry)
	}
	return car
}
