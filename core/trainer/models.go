package trainer

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/etasha-dev/scheduler/core"
)

// Roles
const (
	RoleScheduler = "scheduler"
	RoleTrainer   = "trainer"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var AllRoles = []string{RoleScheduler, RoleTrainer}

// Trainer doubles as the app's auth principal: schedulers log in with the
// same credentials and are distinguished by Role.
type Trainer struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CenterID     null.Int  `json:"center_id"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (t *Trainer) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Trainer) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

func (t *Trainer) IsScheduler() bool {
	return t.Role == RoleScheduler
}

func (t *Trainer) IsActive() bool {
	return t.Status != StatusInactive
}

// NewTrainer contains information needed to create a new Trainer.
type NewTrainer struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=scheduler trainer"`
	Status          string `json:"status" validate:"omitempty,oneof=active inactive"`
	CenterID        *int   `json:"center_id"`
}

func (nt *NewTrainer) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, nt.Email)
}

// UpdateTrainer defines what information may be provided to modify an existing Trainer.
type UpdateTrainer struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Role            string `json:"role" validate:"omitempty,oneof=scheduler trainer"`
	Status          string `json:"status" validate:"omitempty,oneof=active inactive"`
	CenterID        *int   `json:"center_id"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (ut *UpdateTrainer) Validate(ctx context.Context, validate *validator.Validate, origTr Trainer, svc *Service) error {
	name := core.CleanString(ut.Name)
	if name != "" {
		ut.Name = name
	} else {
		ut.Name = origTr.Name
	}

	email := core.CleanString(ut.Email, true /* lower */)
	if email != "" {
		ut.Email = email
	} else {
		ut.Email = origTr.Email
	}

	if ut.Role == "" {
		ut.Role = origTr.Role
	}
	if ut.Status == "" {
		ut.Status = origTr.Status
	}

	if err := validate.Struct(ut); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, ut.Email, origTr)
}
