package cli

import (
	"fmt"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/spf13/cobra"
)

// credentials reads a username (flag or prompt) and a password.
func (a *App) credentials(username string) (string, []byte, error) {
	username, err := a.valueOrPrompt(username, "Username")
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

func (a *App) registerCommand() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, password, err := a.credentials(username)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if _, err := a.auth.Register(ctx, name, password); err != nil {
				return err
			}
			if err := a.auth.Login(ctx, name, password); err != nil {
				return err
			}
			success(a.out, "Welcome to RagVault, %s!", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, password, err := a.credentials(username)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := a.auth.Login(ctx, name, password); err != nil {
				return err
			}
			success(a.out, "Logged in as %s", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			success(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show your karma, tier and permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			p, err := a.auth.Profile(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(a.out, p)
			}
			printProfile(a.out, p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return requireLogin(cmd)
}

func (a *App) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := a.auth.Ping(ctx); err != nil {
				return fmt.Errorf("server %s: %w", a.config.ServerEndpointAddr, err)
			}
			success(a.out, "Server %s is up", a.config.ServerEndpointAddr)
			return nil
		},
	}
}
