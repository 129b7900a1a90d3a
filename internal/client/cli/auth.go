package cli

import (
	"context"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
	"github.com/dmitrijs2005/geotracker/internal/client/services"
	"github.com/dmitrijs2005/geotracker/internal/common"
)

// Test seams for interactive input.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup asks for the account details, checks them locally and registers
// the account. On success the login page is opened.
func (a *App) Signup(ctx context.Context) error {
	var p models.SignupData
	var err error

	if p.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if p.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if p.Password, err = getPassword(a.out, "Password"); err != nil {
		return err
	}
	if p.ConfirmPassword, err = getPassword(a.out, "Confirm password"); err != nil {
		return err
	}

	if err := services.ValidateSignup(p); err != nil {
		a.printf("%s\n", services.MessageOf(err))
		return err
	}

	resp := a.session.Signup(ctx, p)
	a.printf("%s\n", resp.Message)
	if !resp.Success {
		return nil
	}
	a.navigate(ctx, common.RouteLogin)
	return nil
}

// Login asks for credentials and opens the home page on success.
func (a *App) Login(ctx context.Context) error {
	var c models.LoginData
	var err error

	if c.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if c.Password, err = getPassword(a.out, "Password"); err != nil {
		return err
	}

	if err := services.ValidateLogin(c); err != nil {
		a.printf("%s\n", services.MessageOf(err))
		return err
	}

	resp := a.session.Login(ctx, c)
	a.printf("%s\n", resp.Message)
	if !resp.Success {
		return nil
	}
	a.navigate(ctx, common.RouteHome)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.session.Logout(ctx).Success {
		a.printf("Logout failed\n")
		return nil
	}
	if a.cookies != nil {
		if err := a.cookies.Clear(ctx); err != nil {
			a.log.Warn(ctx, "clearing saved session failed", "error", err)
		}
	}
	a.geo = nil
	a.guard = nil
	a.history.Replace(common.RouteLogin)
	a.printf("Logged out\n")
	return nil
}

// WhoAmI asks the backend for the session owner.
func (a *App) WhoAmI(ctx context.Context) error {
	a.session.CheckSession(ctx)
	u := a.session.User()
	if u == nil {
		a.printf("Not logged in\n")
		return nil
	}
	a.printf("%s <%s> (%s), id %d\n", u.Username, u.Email, u.Role, u.ID)
	return nil
}
