package command

import "errors"

// UpdateMeCommand is the self-service profile update. The password fields
// exist only to reject credential changes on this route.
type UpdateMeCommand struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Photo           string `json:"photo"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (c *UpdateMeCommand) Validate() error {
	if c.Password != "" || c.PasswordConfirm != "" {
		return errors.New("you can't update your password here, use /updateMyPassword")
	}
	return nil
}

// UpdateUserCommand is the admin-side partial update; nil means unchanged.
type UpdateUserCommand struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Photo *string `json:"photo"`
	Role  *string `json:"role"`
}
