package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/etasha-dev/scheduler/core/trainer"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db          *sqlx.DB
	trainerRepo trainer.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a database migration command")
	fmt.Println("  addtrainer -name NAME -email EMAIL [-scheduler] - add or update a trainer account")
	fmt.Println("  resetpassword -email EMAIL - reset a trainer's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTrainerCmd := flag.NewFlagSet("addtrainer", flag.ExitOnError)
	addTrainerName := addTrainerCmd.String("name", "", "The trainer's full name.")
	addTrainerEmail := addTrainerCmd.String("email", "", "The trainer's email. The password will be prompted next.")
	addTrainerSched := addTrainerCmd.Bool("scheduler", false, "Grant the scheduler role.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The trainer's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addtrainer":
		if err := addTrainerCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTrainerName == "" || *addTrainerEmail == "" {
			addTrainerCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword(addTrainerCmd)
		if err != nil {
			return err
		}
		return cli.addTrainer(*addTrainerName, *addTrainerEmail, pwd, *addTrainerSched)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword(resetPasswordCmd)
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword(cmd *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}
