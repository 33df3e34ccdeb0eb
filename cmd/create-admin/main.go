// Команда create-admin интерактивно создает первую учётную запись
// администратора. Отказывается работать, если администратор уже есть
// или email занят.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/magabrotheeeer/catering-backend/internal/config"
	"github.com/magabrotheeeer/catering-backend/internal/lib/password"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sanitize"
	"github.com/magabrotheeeer/catering-backend/internal/migrations"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
	"github.com/magabrotheeeer/catering-backend/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(cfg, logger); err != nil {
		logger.Error("failed to create admin", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return err
	}
	defer db.DB.Close()

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return err
	}

	exists, err := db.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("admin account already exists, refusing to create another")
	}

	reader := bufio.NewReader(os.Stdin)

	fullName, err := prompt(reader, "Full name: ")
	if err != nil {
		return err
	}
	if !sanitize.ValidName(fullName) {
		return errors.New("full name must be 2-100 characters of letters, spaces and common punctuation")
	}

	email, err := prompt(reader, "Email: ")
	if err != nil {
		return err
	}
	if _, err = db.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("email %s is already taken", email)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	pass, err := prompt(reader, "Password: ")
	if err != nil {
		return err
	}
	if !password.ValidateStrength(pass) {
		return errors.New("password must be at least 8 characters with upper, lower, digit and special character")
	}

	hash, err := password.GetHash(pass)
	if err != nil {
		return err
	}

	uid, err := db.CreateUser(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
	})
	if err != nil {
		return err
	}

	logger.Info("admin account created", slog.String("uid", uid), slog.String("email", email))
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
