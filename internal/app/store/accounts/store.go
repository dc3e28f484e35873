// internal/app/store/accounts/store.go
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sipelita/dashboard/internal/app/system/apiclient"
	"github.com/sipelita/dashboard/internal/domain/models"
)

// ErrInvalidCredentials is returned when the API rejects the email/password
// pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoToken is returned when a login succeeds without a bearer token.
var ErrNoToken = errors.New("login response carried no token")

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for an account and its bearer token using an
// anonymous client.
func Login(ctx context.Context, c *apiclient.Client, creds Credentials) (models.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	var resp loginResponse
	if err := c.Send(ctx, http.MethodPost, "/api/login", creds, &resp); err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusUnprocessableEntity) {
			return models.User{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Message)
		}
		return models.User{}, err
	}
	u := resp.User
	if u.Token == "" {
		u.Token = resp.Token
	}
	if u.Token == "" {
		return models.User{}, ErrNoToken
	}
	return u, nil
}

// Logout revokes the token of c's session. Callers clear the local session
// whatever this returns.
func Logout(ctx context.Context, c *apiclient.Client) error {
	return c.Send(ctx, http.MethodPost, "/api/logout", nil, nil)
}
