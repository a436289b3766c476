package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/forms"
)

type appFunc func() (*app, error)

func loginCmd(getApp appFunc) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p := newPrompter(cmd)

			if username, err = p.text("Username", username); err != nil {
				return err
			}
			if password, err = p.secret("Password", password); err != nil {
				return err
			}
			f := forms.LoginForm{Username: username, Password: password}
			if err := forms.NewValidator(a.loc).Login(f).ErrIn(a.loc); err != nil {
				return err
			}

			sess, err := a.session(ctx)
			if err != nil {
				return err
			}
			user, err := sess.Login(ctx, f.Username, f.Password)
			if err != nil {
				return err
			}
			return a.out.User(user)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")
	return cmd
}

func logoutCmd(getApp appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			sess.Logout(cmd.Context())
			a.out.Success("Signed out")
			return nil
		},
	}
}

func whoamiCmd(getApp appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			user, ok := sess.User()
			if !ok {
				return apiclient.NewUnauthorizedError(a.loc.T("error.unauthorized"))
			}
			return a.out.User(user)
		},
	}
}

func registerCmd(getApp appFunc) *cobra.Command {
	var f forms.RegistrationForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			p := newPrompter(cmd)
			if f.Password, err = p.secret("Password", f.Password); err != nil {
				return err
			}
			if f.ConfirmPassword, err = p.secret("Confirm password", f.ConfirmPassword); err != nil {
				return err
			}
			if err := forms.NewValidator(a.loc).Registration(f).ErrIn(a.loc); err != nil {
				return err
			}

			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			msg, err := sess.Register(cmd.Context(), f.Request())
			if err != nil {
				return err
			}
			a.out.Success(msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "Username, 3 to 20 letters, digits or underscores")
	cmd.Flags().StringVarP(&f.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "Password (prompted when empty)")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm", "", "Password confirmation (prompted when empty)")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "Mobile number")
	cmd.Flags().StringVar(&f.Address, "address", "", "Shipping address")
	cmd.Flags().BoolVar(&f.Agreement, "agree", false, "Accept the terms of service and privacy policy")
	return cmd
}

func profileCmd(getApp appFunc) *cobra.Command {
	var f forms.ProfileForm

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the signed-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sess, err := a.session(ctx)
			if err != nil {
				return err
			}

			if f != (forms.ProfileForm{}) {
				if err := forms.NewValidator(a.loc).Profile(f).ErrIn(a.loc); err != nil {
					return err
				}
				if _, err := sess.UpdateProfile(ctx, f.Request()); err != nil {
					return err
				}
				a.out.Success(a.loc.T("auth.update_success"))
			}

			profile, err := sess.Profile(ctx)
			if err != nil {
				return err
			}
			return a.out.Profile(profile)
		},
	}
	cmd.Flags().StringVar(&f.Email, "email", "", "New email address")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "New mobile number")
	cmd.Flags().StringVar(&f.Address, "address", "", "New shipping address")
	return cmd
}

func passwdCmd(getApp appFunc) *cobra.Command {
	var f forms.ResetPasswordForm

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			p := newPrompter(cmd)
			if f.CurrentPassword, err = p.secret("Current password", f.CurrentPassword); err != nil {
				return err
			}
			if f.NewPassword, err = p.secret("New password", f.NewPassword); err != nil {
				return err
			}
			if f.ConfirmPassword, err = p.secret("Confirm new password", f.ConfirmPassword); err != nil {
				return err
			}
			if err := forms.NewValidator(a.loc).ResetPassword(f).ErrIn(a.loc); err != nil {
				return err
			}

			sess, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			msg, err := sess.ResetPassword(cmd.Context(), f.Request())
			if err != nil {
				return err
			}
			a.out.Success(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.CurrentPassword, "current", "", "Current password (prompted when empty)")
	cmd.Flags().StringVar(&f.NewPassword, "new", "", "New password (prompted when empty)")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm", "", "New password confirmation (prompted when empty)")
	return cmd
}
