package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"icctv-admin/internal/client"
	"icctv-admin/internal/store"
	"icctv-admin/pkg/models"
)

var (
	opID         int64
	opToken      string
	opIsmartid   string
	opStaff      bool
	opSSHPort    int
	opAuthPort   int
	opPage       int
	opPerPage    int
	pathName     string
	pathSource   string
	pathOnDemand bool
	pathRecord   bool
	pathRecPath  string
	pathRecPart  string
	pathSet      []string
)

var orangepiCmd = &cobra.Command{
	Use:   "orangepi",
	Short: "Remote management of OrangePi devices and their relay paths",
	Long: `Talks to a device through the backend. Calls that need a delegated token
take --token, or --ismartid to have one issued first.`,
}

// remoteToken returns --token, or issues one for --ismartid.
func remoteToken(ctx context.Context, op *store.OrangePiStore) string {
	if opToken != "" || opIsmartid == "" {
		return opToken
	}
	tok, err := op.IssueToken(ctx, opIsmartid, opStaff)
	exitOnErr(err)
	return tok.Token
}

// parseSettings reads key=value pairs. Values are YAML scalars, so
// "true" and "10" arrive as a bool and a number.
func parseSettings(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("setting %q is not key=value", p)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		out[key] = v
	}
	return out, nil
}

func printPathResult(res models.RelayPathResult) {
	render(res, func(w io.Writer) {
		fmt.Fprintf(w, "Action:\t%s\n", res.Action)
		fmt.Fprintf(w, "Path:\t%s\n", res.Name)
		fmt.Fprintf(w, "Relay status:\t%d\n", res.StatusCode)
	})
}

var orangepiTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a delegated token for a device",
	Run: func(cmd *cobra.Command, args []string) {
		tok, err := getRegistry().OrangePi().IssueToken(ctxOf(cmd), opIsmartid, opStaff)
		exitOnErr(err)

		render(tok, func(w io.Writer) {
			fmt.Fprintf(w, "Token:\t%s\n", tok.Token)
			for _, o := range tok.Orangepis {
				fmt.Fprintf(w, "Device %d:\t%s %s\n", o.OrangepiID, o.OrangepiName, strings.Join(o.URLs, " "))
			}
		})
	},
}

var orangepiInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show relay and tunnel details reported by a device",
	Run: func(cmd *cobra.Command, args []string) {
		op := getRegistry().OrangePi()
		ctx := ctxOf(cmd)

		info, err := op.Info(ctx, opID, remoteToken(ctx, op))
		exitOnErr(err)

		render(info, func(w io.Writer) {
			fmt.Fprintf(w, "Device:\t%s\n", info.DeviceID)
			fmt.Fprintf(w, "Status:\t%s\n", info.Status)
			fmt.Fprintf(w, "Relay version:\t%s\n", info.MediamtxVersion)
			fmt.Fprintf(w, "Tunnel server:\t%s\n", info.FrpcServer)
			fmt.Fprintf(w, "Auth port:\t%d\n", info.FrpcAuthRemotePort)
			fmt.Fprintf(w, "SSH port:\t%d\n", info.FrpcSSHRemotePort)
			fmt.Fprintf(w, "Channels:\t%s\n", strings.Join(info.AvailableChannels, ","))
		})
	},
}

var orangepiHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the services running on a device",
	Run: func(cmd *cobra.Command, args []string) {
		health, err := getRegistry().OrangePi().Health(ctxOf(cmd), opID)
		exitOnErr(err)

		render(health, func(w io.Writer) {
			fmt.Fprintf(w, "Status:\t%s\n", health.Status)
			fmt.Fprintf(w, "Service:\t%s\n", health.Service)
			for name, up := range health.DockerServices {
				fmt.Fprintf(w, "%s:\t%s\n", name, yesNo(up))
			}
		})
	},
}

var orangepiPortsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Change the tunnel ports of a device",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := getRegistry().OrangePi().UpdatePorts(ctxOf(cmd), opID, opSSHPort, opAuthPort)
		exitOnErr(err)

		render(res, func(w io.Writer) {
			fmt.Fprintf(w, "Updated:\t%s\n", yesNo(res.Updated))
			fmt.Fprintf(w, "SSH port:\t%d\n", res.SSHPort)
			fmt.Fprintf(w, "Auth port:\t%d\n", res.AuthPort)
		})
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Manage the relay paths of a device",
}

var pathsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List relay paths page by page",
	Run: func(cmd *cobra.Command, args []string) {
		op := getRegistry().OrangePi()
		ctx := ctxOf(cmd)

		q := client.PathQuery{ID: opID, Token: remoteToken(ctx, op), Page: opPage, ItemsPerPage: opPerPage}
		list, err := op.Paths(ctx, q)
		exitOnErr(err)

		render(list, func(w io.Writer) {
			if len(list.Items) == 0 {
				fmt.Fprintln(w, "No paths found.")
				return
			}
			header(w, "NAME", "READY", "SOURCE", "SINCE")
			for _, p := range list.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, yesNo(p.Ready), p.Source, p.ReadyTime)
			}
			fmt.Fprintf(w, "\npage %d, %d total\n", list.ItemsPage, list.ItemsTotal)
		})
	},
}

var pathsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the configuration of one relay path",
	Run: func(cmd *cobra.Command, args []string) {
		op := getRegistry().OrangePi()
		ctx := ctxOf(cmd)

		detail, err := op.Path(ctx, opID, remoteToken(ctx, op), pathName)
		exitOnErr(err)

		render(detail, func(w io.Writer) {
			fmt.Fprintf(w, "Path:\t%s\n", detail.Name)
			for k, v := range detail.Conf {
				fmt.Fprintf(w, "%s:\t%v\n", k, v)
			}
		})
	},
}

var pathsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a relay path",
	Example: `  icctv-admin orangepi paths add --id 3 --ismartid ismart_001 --name cam1 --source rtsp://10.0.0.5/ch1 --on-demand`,
	Run: func(cmd *cobra.Command, args []string) {
		extra, err := parseSettings(pathSet)
		if err != nil {
			fail("%v", err)
		}

		cfg := models.PathConfig{
			Source:             pathSource,
			RecordPath:         pathRecPath,
			RecordPartDuration: pathRecPart,
			Extra:              extra,
		}
		if cmd.Flags().Changed("on-demand") {
			cfg.SourceOnDemand = &pathOnDemand
		}
		if cmd.Flags().Changed("record") {
			cfg.Record = &pathRecord
		}

		op := getRegistry().OrangePi()
		ctx := ctxOf(cmd)

		res, err := op.AddPath(ctx, opID, remoteToken(ctx, op), pathName, cfg)
		exitOnErr(err)
		printPathResult(res)
	},
}

var pathsUpdateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Change settings of a relay path; only the flags given are sent",
	Example: `  icctv-admin orangepi paths update --id 3 --token t0k --name cam1 --record --set recordDeleteAfter=24h`,
	Run: func(cmd *cobra.Command, args []string) {
		patch, err := parseSettings(pathSet)
		if err != nil {
			fail("%v", err)
		}

		flags := cmd.Flags()
		if flags.Changed("source") {
			patch["source"] = pathSource
		}
		if flags.Changed("on-demand") {
			patch["sourceOnDemand"] = pathOnDemand
		}
		if flags.Changed("record") {
			patch["record"] = pathRecord
		}
		if flags.Changed("record-path") {
			patch["recordPath"] = pathRecPath
		}
		if flags.Changed("record-part-duration") {
			patch["recordPartDuration"] = pathRecPart
		}
		if len(patch) == 0 {
			fail("nothing to update")
		}

		op := getRegistry().OrangePi()
		ctx := ctxOf(cmd)

		res, err := op.UpdatePath(ctx, opID, remoteToken(ctx, op), pathName, models.PathPatch(patch))
		exitOnErr(err)
		printPathResult(res)
	},
}

var pathsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a relay path",
	Run: func(cmd *cobra.Command, args []string) {
		op := getRegistry().OrangePi()
		ctx := ctxOf(cmd)

		res, err := op.DeletePath(ctx, opID, remoteToken(ctx, op), pathName)
		exitOnErr(err)
		printPathResult(res)
	},
}

func init() {
	rootCmd.AddCommand(orangepiCmd)
	orangepiCmd.AddCommand(orangepiTokenCmd, orangepiInfoCmd, orangepiHealthCmd, orangepiPortsCmd, pathsCmd)
	pathsCmd.AddCommand(pathsListCmd, pathsGetCmd, pathsAddCmd, pathsUpdateCmd, pathsDeleteCmd)

	orangepiTokenCmd.Flags().StringVar(&opIsmartid, "ismartid", "", "Device identifier")
	orangepiTokenCmd.Flags().BoolVar(&opStaff, "staff", false, "Issue a staff token")
	_ = orangepiTokenCmd.MarkFlagRequired("ismartid")

	for _, c := range []*cobra.Command{orangepiInfoCmd, orangepiHealthCmd, orangepiPortsCmd, pathsListCmd, pathsGetCmd, pathsAddCmd, pathsUpdateCmd, pathsDeleteCmd} {
		c.Flags().Int64Var(&opID, "id", 0, "Device ID")
		_ = c.MarkFlagRequired("id")
	}

	for _, c := range []*cobra.Command{orangepiInfoCmd, pathsListCmd, pathsGetCmd, pathsAddCmd, pathsUpdateCmd, pathsDeleteCmd} {
		c.Flags().StringVar(&opToken, "token", "", "Delegated token")
		c.Flags().StringVar(&opIsmartid, "ismartid", "", "Issue a token for this device when --token is not given")
		c.Flags().BoolVar(&opStaff, "staff", false, "Issue a staff token")
	}

	orangepiPortsCmd.Flags().IntVar(&opSSHPort, "ssh-port", 0, "Remote port of the SSH tunnel")
	orangepiPortsCmd.Flags().IntVar(&opAuthPort, "auth-port", 0, "Remote port of the auth service tunnel")
	_ = orangepiPortsCmd.MarkFlagRequired("ssh-port")
	_ = orangepiPortsCmd.MarkFlagRequired("auth-port")

	pathsListCmd.Flags().IntVar(&opPage, "page", 0, "Page number, starting at 0")
	pathsListCmd.Flags().IntVar(&opPerPage, "per-page", 50, "Paths per page")

	for _, c := range []*cobra.Command{pathsGetCmd, pathsAddCmd, pathsUpdateCmd, pathsDeleteCmd} {
		c.Flags().StringVar(&pathName, "name", "", "Path name")
		_ = c.MarkFlagRequired("name")
	}

	for _, c := range []*cobra.Command{pathsAddCmd, pathsUpdateCmd} {
		c.Flags().StringVar(&pathSource, "source", "", "Stream source, e.g. an RTSP URL")
		c.Flags().BoolVar(&pathOnDemand, "on-demand", false, "Pull the source only while someone reads the path")
		c.Flags().BoolVar(&pathRecord, "record", false, "Record the stream")
		c.Flags().StringVar(&pathRecPath, "record-path", "", "Recording path template")
		c.Flags().StringVar(&pathRecPart, "record-part-duration", "", "Recording segment length, e.g. 1h")
		c.Flags().StringArrayVar(&pathSet, "set", nil, "Any other relay setting as key=value (repeatable)")
	}
	_ = pathsAddCmd.MarkFlagRequired("source")
}
