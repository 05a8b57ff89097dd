package session

import (
	"context"

	"github.com/kri-sh27/s3transcribe/internal/server/users"
	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// Credentials is the slice of the users service the controller needs.
type Credentials interface {
	Register(ctx context.Context, email, password string) (*users.User, error)
	Authenticate(ctx context.Context, email, password string) (bool, error)
}

// Controller drives the login/register/home state machine. All
// transitions happen here; handlers only relay form input and render
// the resulting view.
type Controller struct {
	creds Credentials
}

func NewController(creds Credentials) *Controller {
	return &Controller{creds: creds}
}

// minPasswordLength is enforced locally, before the credential store is
// ever called.
const minPasswordLength = 6

// SubmitRegister validates the registration form and creates the
// credential row. On any error the session stays on the registration
// view; on success it also stays there so the user can proceed to login
// explicitly.
func (c *Controller) SubmitRegister(ctx context.Context, s *Session, email, password, confirm string) error {

	if password != confirm {
		return shared.ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return shared.ErrPasswordTooShort
	}

	if _, err := c.creds.Register(ctx, email, password); err != nil {
		return err
	}

	return nil
}

// SubmitLogin checks the credentials; on success the session becomes
// authenticated and moves to the home view.
func (c *Controller) SubmitLogin(ctx context.Context, s *Session, email, password string) error {

	ok, err := c.creds.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrInvalidCredentials
	}

	s.Authenticated = true
	s.Email = email
	s.View = ViewHome

	return nil
}

// Navigate switches between the login and register views. Home is only
// reachable through a successful login.
func (c *Controller) Navigate(s *Session, view View) error {
	switch view {
	case ViewLogin, ViewRegister:
		s.View = view
		return nil
	case ViewHome:
		if !s.Authenticated {
			return shared.ErrUnauthorized
		}
		s.View = ViewHome
		return nil
	default:
		return shared.ErrNotFound
	}
}

// Logout clears the authenticated identity and returns the session to
// the login view. The caller is expected to destroy the session in the
// manager as well.
func (c *Controller) Logout(s *Session) {
	s.Authenticated = false
	s.Email = ""
	s.Recording = ""
	s.Result = nil
	s.View = ViewLogin
}
