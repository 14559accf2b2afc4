package main

import (
	"context"
	"time"

	"github.com/etasha-dev/scheduler/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	tr, err := cli.trainerRepo.GetTrainerByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := tr.SetPassword(pwd); err != nil {
		return err
	}
	tr.UpdatedAt = time.Now().UTC()
	if _, err := cli.trainerRepo.UpdateTrainer(ctx, tr); err != nil {
		return err
	}
	return nil
}
