package cli

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/services"
)

type authenticator interface {
	Login(ctx context.Context, form models.LoginForm) (models.User, error)
	Register(ctx context.Context, form models.RegisterForm) (models.User, error)
}

type loginCommand struct {
	steps
	ctx  context.Context
	auth authenticator
	form models.LoginForm
}

func newLoginCommand(ctx context.Context, out console, auth authenticator) *loginCommand {
	cmd := &loginCommand{ctx: ctx, auth: auth}
	cmd.out = out
	cmd.onComplete = cmd.login

	username := newTextInput("Username:", func(input string) { cmd.form.Username = input })
	username.AddValidation(required("Username is required"))

	password := newSecretInput("Password:", func(input string) { cmd.form.Password = input })
	password.AddValidation(required("Password is required"))

	cmd.inputHandlers = []inputHandler{username, password}
	return cmd
}

func (c *loginCommand) login() {
	user, err := c.auth.Login(c.ctx, c.form)
	if err != nil {
		c.out.Send(services.DescribeError(err))
		return
	}
	c.out.Sendf("Welcome back, %s!", user.Username)
}

type registerCommand struct {
	steps
	ctx  context.Context
	auth authenticator
	form models.RegisterForm
}

func newRegisterCommand(ctx context.Context, out console, auth authenticator) *registerCommand {
	cmd := &registerCommand{ctx: ctx, auth: auth}
	cmd.out = out
	cmd.onComplete = cmd.register

	username := newTextInput("Choose a username (at least 3 characters):", func(input string) {
		cmd.form.Username = input
	})
	username.AddValidation(required("Username is required"))

	password := newSecretInput("Choose a password (at least 6 characters):", func(input string) {
		cmd.form.Password = input
	})
	password.AddValidation(required("Password is required"))

	confirm := newSecretInput("Confirm password:", func(input string) { cmd.form.ConfirmPassword = input })

	cmd.inputHandlers = []inputHandler{username, password, confirm}
	return cmd
}

func (c *registerCommand) register() {
	user, err := c.auth.Register(c.ctx, c.form)
	if err != nil {
		c.out.Send(services.DescribeError(err))
		return
	}
	c.out.Sendf("Account created. Welcome, %s!", user.Username)
}
