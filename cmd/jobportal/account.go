package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-portal/internal/types"
)

var (
	signupReq types.SignupRequest
	loginReq  types.LoginRequest
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a bearer token",
	Long:  `Log in and print a bearer token. Export it as PORTAL_TOKEN or pass it with --token.`,
	RunE:  runLogin,
}

func init() {
	signupCmd.Flags().StringVar(&signupReq.Username, "username", "", "Username")
	signupCmd.Flags().StringVar(&signupReq.Email, "email", "", "Email")
	signupCmd.Flags().StringVar(&signupReq.Password, "password", "", "Password (at most 12 characters)")
	signupCmd.Flags().StringVar(&signupReq.Role, "role", types.RoleJobseeker, "jobseeker, recruiter or Admin")

	loginCmd.Flags().StringVar(&loginReq.Email, "email", "", "Email")
	loginCmd.Flags().StringVar(&loginReq.Password, "password", "", "Password")

	rootCmd.AddCommand(signupCmd, loginCmd)
}

func runSignup(cmd *cobra.Command, _ []string) error {
	if err := signupReq.Validate(); err != nil {
		return fmt.Errorf("invalid signup: %w", err)
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if err := e.client().Signup(cmd.Context(), &signupReq); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "User signed up successfully")
	return nil
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if err := loginReq.Validate(); err != nil {
		return fmt.Errorf("invalid login: %w", err)
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	resp, err := e.client().Login(cmd.Context(), &loginReq)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Logged in as %s (%s)\n", resp.User.Username, resp.User.Role)
	fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
	return nil
}
