package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"icctv-admin/pkg/models"
)

var (
	nvrID         int64
	nvrName       string
	nvrURL        string
	nvrBuildingID int64
	nvrKeyword    string
	nvrAdminName  string
	nvrAdminPass  string
	nvrUserName   string
	nvrUserPass   string
	nvrUsers      []string
	nvrChannel    int
	nvrStreamURL  string
)

func printNvrs(nvrs []models.Nvr) {
	render(nvrs, func(w io.Writer) {
		if len(nvrs) == 0 {
			fmt.Fprintln(w, "No NVRs found.")
			return
		}
		header(w, "ID", "NAME", "URL", "BUILDING", "ADMIN", "USERS", "STREAMS")
		for _, n := range nvrs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%d\t%d\n",
				n.ID, n.Name, n.URL, n.BuildingID, n.AdminUser.Name, len(n.Users), len(n.RTSPURLs))
		}
	})
}

func printNvrDetail(n models.Nvr) {
	render(n, func(w io.Writer) {
		fmt.Fprintf(w, "ID:\t%d\n", n.ID)
		fmt.Fprintf(w, "Name:\t%s\n", n.Name)
		fmt.Fprintf(w, "URL:\t%s\n", n.URL)
		fmt.Fprintf(w, "Building:\t%d\n", n.BuildingID)
		fmt.Fprintf(w, "Admin user:\t%s\n", n.AdminUser.Name)
		for _, u := range n.Users {
			fmt.Fprintf(w, "User:\t%s\n", u.Name)
		}
		for _, s := range n.RTSPURLs {
			fmt.Fprintf(w, "Channel %d:\t%s\n", s.Channel, s.URL)
		}
	})
}

// parseCredentials reads name:password pairs.
func parseCredentials(pairs []string) ([]models.Credential, error) {
	out := make([]models.Credential, 0, len(pairs))
	for _, p := range pairs {
		name, pass, ok := strings.Cut(p, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("user %q is not name:password", p)
		}
		out = append(out, models.Credential{Name: name, Password: pass})
	}
	return out, nil
}

var nvrsCmd = &cobra.Command{
	Use:     "nvrs",
	Aliases: []string{"nvr"},
	Short:   "Manage network video recorders",
}

var nvrsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List NVRs, optionally filtered by name or URL",
	Run: func(cmd *cobra.Command, args []string) {
		nvrs := getRegistry().Nvrs()
		nvrs.SetKeyword(nvrKeyword)

		exitOnErr(nvrs.List(ctxOf(cmd)))
		printNvrs(nvrs.Items())
	},
}

var nvrsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one NVR with its users and streams",
	Run: func(cmd *cobra.Command, args []string) {
		n, err := getRegistry().Nvrs().Fetch(ctxOf(cmd), nvrID)
		exitOnErr(err)
		printNvrDetail(n)
	},
}

var nvrsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Register an NVR",
	Example: `  icctv-admin nvrs create --name "Lobby NVR" --url http://10.0.0.5 --building 1 --admin-name admin --admin-password secret`,
	Run: func(cmd *cobra.Command, args []string) {
		payload := models.NvrCreatePayload{Name: nvrName, URL: nvrURL, BuildingID: nvrBuildingID}
		if nvrAdminName != "" {
			payload.AdminUser = &models.Credential{Name: nvrAdminName, Password: nvrAdminPass}
		}
		users, err := parseCredentials(nvrUsers)
		if err != nil {
			fail("%v", err)
		}
		payload.Users = users

		nvrs := getRegistry().Nvrs()
		exitOnErr(nvrs.Create(ctxOf(cmd), payload))
		printNvrs(nvrs.Items())
	},
}

var nvrsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change fields of an NVR; only the flags given are sent",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		var payload models.NvrUpdatePayload
		if flags.Changed("name") {
			payload.Name = &nvrName
		}
		if flags.Changed("url") {
			payload.URL = &nvrURL
		}
		if flags.Changed("building") {
			payload.BuildingID = &nvrBuildingID
		}

		nvrs := getRegistry().Nvrs()
		exitOnErr(nvrs.Update(ctxOf(cmd), payload, nvrID))
		if n, ok := nvrs.Lookup(nvrID); ok {
			printNvrDetail(n)
		}
	},
}

var nvrsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an NVR by ID",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Nvrs().Remove(ctxOf(cmd), nvrID))
	},
}

var nvrsSetAdminCmd = &cobra.Command{
	Use:   "set-admin",
	Short: "Replace the NVR admin credential",
	Run: func(cmd *cobra.Command, args []string) {
		admin := models.Credential{Name: nvrAdminName, Password: nvrAdminPass}
		exitOnErr(getRegistry().Nvrs().UpdateAdminUser(ctxOf(cmd), nvrID, admin))
	},
}

var nvrsSetUsersCmd = &cobra.Command{
	Use:     "set-users",
	Short:   "Replace the whole NVR user list",
	Example: `  icctv-admin nvrs set-users --id 4 --user guard:pw1 --user night:pw2`,
	Run: func(cmd *cobra.Command, args []string) {
		users, err := parseCredentials(nvrUsers)
		if err != nil {
			fail("%v", err)
		}
		exitOnErr(getRegistry().Nvrs().UpdateUsers(ctxOf(cmd), nvrID, users))
	},
}

var nvrsAddUserCmd = &cobra.Command{
	Use:   "add-user",
	Short: "Add one user to an NVR",
	Run: func(cmd *cobra.Command, args []string) {
		user := models.Credential{Name: nvrUserName, Password: nvrUserPass}
		exitOnErr(getRegistry().Nvrs().AddUser(ctxOf(cmd), nvrID, user))
	},
}

var nvrsRemoveUserCmd = &cobra.Command{
	Use:   "remove-user",
	Short: "Remove one user from an NVR",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Nvrs().RemoveUser(ctxOf(cmd), nvrID, nvrUserName))
	},
}

var nvrsAddStreamCmd = &cobra.Command{
	Use:   "add-stream",
	Short: "Add an RTSP stream URL for a channel",
	Run: func(cmd *cobra.Command, args []string) {
		stream := models.RTSPURL{Channel: nvrChannel, URL: nvrStreamURL}
		exitOnErr(getRegistry().Nvrs().AddRTSPURL(ctxOf(cmd), nvrID, stream))
	},
}

var nvrsRemoveStreamCmd = &cobra.Command{
	Use:   "remove-stream",
	Short: "Remove the RTSP stream URL of a channel",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Nvrs().RemoveRTSPURL(ctxOf(cmd), nvrID, nvrChannel))
	},
}

func init() {
	rootCmd.AddCommand(nvrsCmd)

	nvrsCmd.AddCommand(nvrsListCmd)
	nvrsListCmd.Flags().StringVar(&nvrKeyword, "keyword", "", "Case-insensitive match on name or URL")

	byID := []*cobra.Command{
		nvrsGetCmd, nvrsUpdateCmd, nvrsDeleteCmd,
		nvrsSetAdminCmd, nvrsSetUsersCmd, nvrsAddUserCmd, nvrsRemoveUserCmd,
		nvrsAddStreamCmd, nvrsRemoveStreamCmd,
	}
	for _, c := range byID {
		nvrsCmd.AddCommand(c)
		c.Flags().Int64Var(&nvrID, "id", 0, "NVR ID")
		_ = c.MarkFlagRequired("id")
	}

	nvrsCmd.AddCommand(nvrsCreateCmd)
	for _, c := range []*cobra.Command{nvrsCreateCmd, nvrsUpdateCmd} {
		c.Flags().StringVar(&nvrName, "name", "", "Display name")
		c.Flags().StringVar(&nvrURL, "url", "", "NVR web address")
		c.Flags().Int64Var(&nvrBuildingID, "building", 0, "Building ID")
	}
	_ = nvrsCreateCmd.MarkFlagRequired("name")
	_ = nvrsCreateCmd.MarkFlagRequired("url")
	nvrsCreateCmd.Flags().StringArrayVar(&nvrUsers, "user", nil, "User as name:password (repeatable)")

	for _, c := range []*cobra.Command{nvrsCreateCmd, nvrsSetAdminCmd} {
		c.Flags().StringVar(&nvrAdminName, "admin-name", "", "Admin user name")
		c.Flags().StringVar(&nvrAdminPass, "admin-password", "", "Admin user password")
	}
	_ = nvrsSetAdminCmd.MarkFlagRequired("admin-name")

	nvrsSetUsersCmd.Flags().StringArrayVar(&nvrUsers, "user", nil, "User as name:password (repeatable)")

	for _, c := range []*cobra.Command{nvrsAddUserCmd, nvrsRemoveUserCmd} {
		c.Flags().StringVar(&nvrUserName, "username", "", "User name")
		_ = c.MarkFlagRequired("username")
	}
	nvrsAddUserCmd.Flags().StringVar(&nvrUserPass, "password", "", "User password")

	for _, c := range []*cobra.Command{nvrsAddStreamCmd, nvrsRemoveStreamCmd} {
		c.Flags().IntVar(&nvrChannel, "channel", 0, "Channel number")
		_ = c.MarkFlagRequired("channel")
	}
	nvrsAddStreamCmd.Flags().StringVar(&nvrStreamURL, "url", "", "RTSP URL")
	_ = nvrsAddStreamCmd.MarkFlagRequired("url")
}
