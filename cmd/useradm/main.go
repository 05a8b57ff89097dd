// Command useradm registers user accounts from the terminal, for
// provisioning without going through the web form.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/kri-sh27/s3transcribe/internal/server/config"
	"github.com/kri-sh27/s3transcribe/internal/server/shared/db"
	"github.com/kri-sh27/s3transcribe/internal/server/users"
	"github.com/kri-sh27/s3transcribe/internal/shared"
)

const minPasswordLength = 6

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println("Success!")
}

func run() error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	email, err := getSimpleText(bufio.NewReader(os.Stdin), "Enter user name (email)")
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password")
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password")
	if err != nil {
		return err
	}

	if string(password) != string(confirm) {
		return shared.ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return shared.ErrPasswordTooShort
	}

	um, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	if err := um.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	us := users.NewService(um.Users())

	if _, err := us.Register(ctx, email, string(password)); err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			return fmt.Errorf("user %s already exists", email)
		}
		return err
	}

	return nil
}

func getSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func getPassword(prompt string) ([]byte, error) {
	fmt.Println(prompt)
	return term.ReadPassword(int(os.Stdin.Fd()))
}
