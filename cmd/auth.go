package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/dxtrack/internal/repositories"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// Register creates an operator account in the database.
func (r *Runner) Register(ctx context.Context, cmd *cli.Command) error {
	callsign := cmd.StringArg("callsign")
	if callsign == "" {
		return fmt.Errorf("%w: callsign", shared.ErrMissingArgument)
	}

	password, err := r.password(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	users := repositories.NewUserRepository(db)
	user, err := users.Register(callsign, password)
	if err != nil {
		return err
	}

	if cmd.Bool("admin") {
		if err := users.SetAdmin(user.Callsign, true); err != nil {
			return err
		}
	}

	r.logger.Info("account created", "callsign", user.Callsign)
	r.writePlain("✓ Registered %s\n", user.Callsign)
	return nil
}

// Login authenticates an operator and saves the session file.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	callsign := cmd.StringArg("callsign")
	if callsign == "" {
		return fmt.Errorf("%w: callsign", shared.ErrMissingArgument)
	}

	password, err := r.password(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := repositories.NewUserRepository(db).Authenticate(callsign, password)
	if err != nil {
		return err
	}

	session, err := shared.SaveSession(r.config.Data, user.Callsign)
	if err != nil {
		return err
	}

	r.logger.Info("logged in", "callsign", session.Callsign)
	r.writePlain("✓ Logged in as %s\n", session.Callsign)
	return nil
}

// Logout clears the saved session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := shared.ClearSession(r.config.Data); err != nil {
		return err
	}
	r.writePlain("✓ Logged out\n")
	return nil
}

// Whoami shows the logged-in operator.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	session, err := shared.LoadSession(r.config.Data)
	if err != nil {
		return err
	}
	r.writePlain("%s (since %s)\n", session.Callsign, session.LoggedIn.Format("2006-01-02 15:04"))
	return nil
}

// password returns the --password flag or prompts on stdin.
func (r *Runner) password(cmd *cli.Command) (string, error) {
	if pw := cmd.String("password"); pw != "" {
		return pw, nil
	}

	r.writePlain("Password: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("%w: password", shared.ErrMissingArgument)
	}

	pw := strings.TrimSpace(scanner.Text())
	if pw == "" {
		return "", fmt.Errorf("%w: password", shared.ErrMissingArgument)
	}
	return pw, nil
}
