package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"icctv-admin/pkg/models"
)

var (
	adminID       int64
	adminUsername string
	adminPassword string
	adminPage     int
	adminPageSize int
)

var adminsCmd = &cobra.Command{
	Use:     "admins",
	Aliases: []string{"accounts"},
	Short:   "Manage operator accounts",
}

func printAdmins(admins []models.Admin, page models.PageMeta) {
	render(admins, func(w io.Writer) {
		if len(admins) == 0 {
			fmt.Fprintln(w, "No accounts found.")
			return
		}
		header(w, "ID", "USERNAME", "CREATED")
		for _, a := range admins {
			fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a.Username, a.CreatedAt)
		}
		if page.Size > 0 {
			fmt.Fprintf(w, "\npage %d, %d per page, %d total\n", page.Current, page.Size, page.Total)
		}
	})
}

var adminsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts page by page",
	Run: func(cmd *cobra.Command, args []string) {
		admins := getRegistry().Admins()
		admins.SetPage(adminPage, adminPageSize)

		exitOnErr(admins.List(ctxOf(cmd)))
		printAdmins(admins.Items(), admins.Page())
	},
}

var adminsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one account",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := getRegistry().Admins().Fetch(ctxOf(cmd), adminID)
		exitOnErr(err)
		printAdmins([]models.Admin{a}, models.PageMeta{})
	},
}

var adminsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		payload := models.AdminCreatePayload{Username: adminUsername, Password: adminPassword}
		exitOnErr(getRegistry().Admins().Create(ctxOf(cmd), payload))
	},
}

var adminsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rename an account or reset its password",
	Run: func(cmd *cobra.Command, args []string) {
		payload := models.AdminUpdatePayload{ID: adminID}
		if cmd.Flags().Changed("username") {
			payload.Username = &adminUsername
		}
		if cmd.Flags().Changed("password") {
			payload.Password = &adminPassword
		}
		exitOnErr(getRegistry().Admins().Update(ctxOf(cmd), payload))
	},
}

var adminsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an account by ID",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Admins().Remove(ctxOf(cmd), adminID))
	},
}

func init() {
	rootCmd.AddCommand(adminsCmd)

	adminsCmd.AddCommand(adminsListCmd)
	adminsListCmd.Flags().IntVar(&adminPage, "page", 1, "Page number, starting at 1")
	adminsListCmd.Flags().IntVar(&adminPageSize, "page-size", 20, "Accounts per page")

	for _, c := range []*cobra.Command{adminsGetCmd, adminsUpdateCmd, adminsDeleteCmd} {
		adminsCmd.AddCommand(c)
		c.Flags().Int64Var(&adminID, "id", 0, "Account ID")
		_ = c.MarkFlagRequired("id")
	}

	adminsCmd.AddCommand(adminsCreateCmd)
	for _, c := range []*cobra.Command{adminsCreateCmd, adminsUpdateCmd} {
		c.Flags().StringVarP(&adminUsername, "username", "u", "", "Username")
		c.Flags().StringVarP(&adminPassword, "password", "p", "", "Password")
	}
	_ = adminsCreateCmd.MarkFlagRequired("username")
	_ = adminsCreateCmd.MarkFlagRequired("password")
}
