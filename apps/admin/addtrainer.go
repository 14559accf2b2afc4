package main

import (
	"context"
	"time"

	"github.com/etasha-dev/scheduler/core"
	"github.com/etasha-dev/scheduler/core/trainer"
)

// addTrainer updates or creates a trainer account.
func (cli *commandLine) addTrainer(name, email, pwd string, isScheduler bool) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	tr, err := cli.trainerRepo.GetTrainerByEmail(ctx, email)
	if err != nil {
		if err != trainer.ErrNotFound {
			return err
		}
		tr = trainer.Trainer{
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}
	tr.Name = name
	tr.Role = trainer.RoleTrainer
	if isScheduler {
		tr.Role = trainer.RoleScheduler
	}
	tr.Status = trainer.StatusActive
	tr.UpdatedAt = time.Now().UTC()
	if err := tr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.trainerRepo.UpdateOrCreateTrainer(ctx, tr); err != nil {
		return err
	}
	return nil
}
