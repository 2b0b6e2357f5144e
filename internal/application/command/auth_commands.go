// Package command holds the request DTOs the delivery layer binds and the
// services consume. Validate methods cover input shape only; domain rules
// live on the entities.
package command

import "errors"

type SignupCommand struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Role            string `json:"role"`
}

func (c *SignupCommand) Validate() error {
	if c.Password == "" {
		return errors.New("please provide a password")
	}
	if len(c.Password) < 8 {
		return errors.New("password must have at least 8 characters")
	}
	if c.Password != c.PasswordConfirm {
		return errors.New("passwords are not the same")
	}
	return nil
}

type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *LoginCommand) Validate() error {
	if c.Email == "" || c.Password == "" {
		return errors.New("please provide email and password")
	}
	return nil
}

type ForgotPasswordCommand struct {
	Email string `json:"email"`
}

func (c *ForgotPasswordCommand) Validate() error {
	if c.Email == "" {
		return errors.New("you must provide an email address")
	}
	return nil
}

type ResetPasswordCommand struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (c *ResetPasswordCommand) Validate() error {
	if c.Password == "" {
		return errors.New("please provide a password")
	}
	if len(c.Password) < 8 {
		return errors.New("password must have at least 8 characters")
	}
	if c.Password != c.PasswordConfirm {
		return errors.New("passwords are not the same")
	}
	return nil
}

type UpdatePasswordCommand struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (c *UpdatePasswordCommand) Validate() error {
	if c.PasswordCurrent == "" {
		return errors.New("please provide your current password")
	}
	if len(c.Password) < 8 {
		return errors.New("password must have at least 8 characters")
	}
	if c.Password != c.PasswordConfirm {
		return errors.New("passwords are not the same")
	}
	return nil
}
