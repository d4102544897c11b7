package app

import (
	"context"
	"errors"

	"it_asset_manager/services"
)

// BootstrapDefaultAdmin creates the initial admin account when the user
// table is empty, so a fresh install is reachable. Credentials come from the
// environment and default to admin/admin123.
func BootstrapDefaultAdmin(ctx context.Context, a *App, auth *services.AuthService) {
	count, err := auth.Repo.CountUsers(ctx)
	if err != nil {
		a.Log.Error().Err(err).Msg("bootstrap: count users")
		return
	}
	if count > 0 {
		return
	}

	u, err := auth.CreateUser(ctx, a.Config.BootstrapAdminUser, a.Config.BootstrapAdminPassword, a.Config.BootstrapAdminEmail, true)
	if err != nil {
		if !errors.Is(err, services.ErrConflict) {
			a.Log.Error().Err(err).Msg("bootstrap: create admin")
		}
		return
	}
	a.Log.Info().Str("username", u.Username).Msg("default admin user created, change the password after first login")
}
