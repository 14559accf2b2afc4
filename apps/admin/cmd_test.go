package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/etasha-dev/scheduler/core/trainer"
	dummydb "github.com/etasha-dev/scheduler/storage/database/dummy"
)

func setup(t *testing.T) (*commandLine, trainer.Repository) {
	t.Helper()
	repo := dummydb.NewTrainerRepository(dummydb.Open())
	return &commandLine{trainerRepo: repo}, repo
}

func createTrainer(t *testing.T, repo trainer.Repository, name, email, pwd string) trainer.Trainer {
	t.Helper()
	now := time.Now().UTC()
	tr := trainer.Trainer{
		Name:      name,
		Email:     email,
		Role:      trainer.RoleTrainer,
		Status:    trainer.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tr.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	tr, err := repo.CreateTrainer(context.Background(), tr)
	if err != nil {
		t.Fatalf("CreateTrainer(): %v", err)
	}
	return tr
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, repo := setup(t)

	tr := createTrainer(t, repo, "Awa Diop", "awa@test.cd", "mdr")

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "trainer not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: trainer.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", tr.Email}, extra: extra{pwd: "lol"}},
		{name: "email match is case insensitive", args: []string{"resetpassword", "-email", "AWA@test.cd"}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := repo.GetTrainerByID(context.Background(), tr.ID)
				if err != nil {
					t.Fatalf("GetTrainerByID(): %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, tr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addTrainer(t *testing.T) {
	cli, repo := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{"addtrainer"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"addtrainer", "-name", "Awa Diop"}, wantErr: errHelp},
		{name: "create trainer", args: []string{"addtrainer", "-name", "Awa Diop", "-email", "awa@test.cd"}},
		{name: "promote to scheduler", args: []string{"addtrainer", "-name", "Awa Diop", "-email", "awa@test.cd", "-scheduler"}},
	}

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("mdr"), nil }

	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	tr, err := repo.GetTrainerByEmail(context.Background(), "awa@test.cd")
	if err != nil {
		t.Fatalf("GetTrainerByEmail(): %v", err)
	}
	if tr.Role != trainer.RoleScheduler {
		t.Errorf("Role = %s, want %s", tr.Role, trainer.RoleScheduler)
	}
	if err := tr.CheckPassword("mdr"); err != nil {
		t.Error("password was not set")
	}

	all, err := repo.QueryAllTrainers(context.Background())
	if err != nil {
		t.Fatalf("QueryAllTrainers(): %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(trainers) = %d, want 1 (addtrainer must upsert)", len(all))
	}
}
