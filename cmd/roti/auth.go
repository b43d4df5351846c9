package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rotierp/internal/api"
	"rotierp/internal/apiclient"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = prompt("email: ")
			}
			if password == "" {
				password = prompt("password: ")
			}
			if email == "" || password == "" {
				return &apiclient.ValidationError{Message: "email and password are required"}
			}
			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("logged in as %s (%s)\n", user.FullName(), user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Local credentials are wiped even when the server is unreachable
			a.session.Logout(cmd.Context())
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd); err != nil {
				return err
			}
			user := a.session.CurrentUser()
			fmt.Printf("%s <%s>\nrole: %s\nstatus: %s\n", user.FullName(), user.Email, user.Role, user.Status)
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Email == "" || req.Password == "" || req.FirstName == "" {
				return &apiclient.ValidationError{Message: "--email, --password and --first-name are required"}
			}
			user, err := a.session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("registered %s (%s), role %s\n", user.FullName(), user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.api.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("backend: %v, database: %v\n", status["status"], status["database"])
			return nil
		},
	}
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}
