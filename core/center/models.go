package center

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/etasha-dev/scheduler/core"
)

// Center is a physical training location.
type Center struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	LocationID         string    `json:"location_id"`
	OwnerName          string    `json:"owner_name"`
	OwnerContact       string    `json:"owner_contact"`
	MaintenanceContact string    `json:"maintenance_contact"`
	GPSCoordinates     string    `json:"gps_coordinates"`
	CreatedAt          time.Time `json:"created_at"` // UTC
	UpdatedAt          time.Time `json:"updated_at"` // UTC
}

type NewCenter struct {
	Name               string `json:"name" validate:"required"`
	Address            string `json:"address"`
	LocationID         string `json:"location_id"`
	OwnerName          string `json:"owner_name"`
	OwnerContact       string `json:"owner_contact"`
	MaintenanceContact string `json:"maintenance_contact"`
	GPSCoordinates     string `json:"gps_coordinates"`
}

func (nc *NewCenter) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Address = core.CleanString(nc.Address)
	return validate.Struct(nc)
}

type UpdateCenter struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	LocationID         string `json:"location_id"`
	OwnerName          string `json:"owner_name"`
	OwnerContact       string `json:"owner_contact"`
	MaintenanceContact string `json:"maintenance_contact"`
	GPSCoordinates     string `json:"gps_coordinates"`
}

func (uc *UpdateCenter) Validate(validate *validator.Validate, orig Center) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	return validate.Struct(uc)
}
