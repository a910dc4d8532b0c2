package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/logger"
	log "github.com/sirupsen/logrus"
	"strings"
)

type sessionStore interface {
	Login(ctx context.Context, user models.User) error
	Logout(ctx context.Context) error
}

type Auth struct {
	users   userStorage
	session sessionStore
}

func NewAuth(users userStorage, session sessionStore) *Auth {
	return &Auth{users: users, session: session}
}

// Register creates the account and signs the new user in.
func (a *Auth) Register(ctx context.Context, form models.RegisterForm) (models.User, error) {
	if err := form.Validate(); err != nil {
		return models.User{}, err
	}
	username := strings.TrimSpace(form.Username)

	exists, err := a.users.UsernameExists(ctx, username)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to check username %s: %v", username, err)
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	user, err := a.users.CreateUser(ctx, models.User{Username: username, Password: form.Password})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to create user %s: %v", username, err)
		return models.User{}, err
	}
	log.Infof("user %s registered with id %s", user.Username, user.ID)

	if err = a.session.Login(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("registered but could not start session: %w", err)
	}
	return user, nil
}

func (a *Auth) Login(ctx context.Context, form models.LoginForm) (models.User, error) {
	if err := form.Validate(); err != nil {
		return models.User{}, err
	}
	username := strings.TrimSpace(form.Username)

	user, err := a.users.FindUser(ctx, username, form.Password)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to look up user %s: %v", username, err)
		return models.User{}, err
	}
	if user == nil {
		log.Infof("failed login attempt for %s", username)
		return models.User{}, ErrInvalidCredentials
	}

	if err = a.session.Login(ctx, *user); err != nil {
		return models.User{}, err
	}
	return *user, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}
