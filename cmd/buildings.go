package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"icctv-admin/pkg/models"
)

var (
	buildingID       int64
	buildingIsmartid string
	buildingName     string
	buildingRemark   string
	buildingKeyword  string
	bindDeviceID     int64
	bindNvrID        int64
)

func printBuildings(buildings []models.Building) {
	render(buildings, func(w io.Writer) {
		if len(buildings) == 0 {
			fmt.Fprintln(w, "No buildings found.")
			return
		}
		header(w, "ID", "ISMARTID", "NAME", "DEVICES", "NVRS", "REMARK")
		for _, b := range buildings {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", b.ID, b.Ismartid, b.Name, len(b.Orangepis), len(b.Nvrs), b.Remark)
		}
	})
}

// buildingDetail is a building with the devices and NVRs bound to it.
type buildingDetail struct {
	models.Building
	BoundDevices []models.Device `json:"bound_devices"`
	BoundNvrs    []models.Nvr    `json:"bound_nvrs"`
}

var buildingsCmd = &cobra.Command{
	Use:     "buildings",
	Aliases: []string{"building"},
	Short:   "Manage buildings and what is bound to them",
}

var buildingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List buildings, optionally filtered by name or ismartid",
	Run: func(cmd *cobra.Command, args []string) {
		buildings := getRegistry().Buildings()
		buildings.SetKeyword(buildingKeyword)

		exitOnErr(buildings.List(ctxOf(cmd)))
		printBuildings(buildings.Items())
	},
}

var buildingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a building with its bound devices and NVRs",
	Run: func(cmd *cobra.Command, args []string) {
		buildings := getRegistry().Buildings()
		ctx := ctxOf(cmd)

		b, err := buildings.Fetch(ctx, buildingID)
		exitOnErr(err)

		detail := buildingDetail{Building: b}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			detail.BoundDevices, err = buildings.Devices(gctx, buildingID)
			return err
		})
		g.Go(func() error {
			var err error
			detail.BoundNvrs, err = buildings.Nvrs(gctx, buildingID)
			return err
		})
		exitOnErr(g.Wait())

		render(detail, func(w io.Writer) {
			fmt.Fprintf(w, "ID:\t%d\n", b.ID)
			fmt.Fprintf(w, "Ismartid:\t%s\n", b.Ismartid)
			fmt.Fprintf(w, "Name:\t%s\n", b.Name)
			fmt.Fprintf(w, "Remark:\t%s\n", b.Remark)
			for _, d := range detail.BoundDevices {
				fmt.Fprintf(w, "Device:\t%d %s (%s)\n", d.ID, d.Name, d.Ismartid)
			}
			for _, n := range detail.BoundNvrs {
				fmt.Fprintf(w, "NVR:\t%d %s (%s)\n", n.ID, n.Name, n.URL)
			}
		})
	},
}

var buildingsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a building",
	Run: func(cmd *cobra.Command, args []string) {
		buildings := getRegistry().Buildings()
		payload := models.BuildingPayload{Ismartid: buildingIsmartid, Name: buildingName, Remark: buildingRemark}

		exitOnErr(buildings.Create(ctxOf(cmd), payload))
		printBuildings(buildings.Items())
	},
}

var buildingsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the fields of a building",
	Run: func(cmd *cobra.Command, args []string) {
		buildings := getRegistry().Buildings()
		payload := models.BuildingPayload{Ismartid: buildingIsmartid, Name: buildingName, Remark: buildingRemark}

		exitOnErr(buildings.Update(ctxOf(cmd), payload, buildingID))
		if b, ok := buildings.Lookup(buildingID); ok {
			printBuildings([]models.Building{b})
		}
	},
}

var buildingsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a building by ID",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Buildings().Remove(ctxOf(cmd), buildingID))
	},
}

var buildingsBindDeviceCmd = &cobra.Command{
	Use:   "bind-device",
	Short: "Bind a device to a building",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Buildings().BindDevice(ctxOf(cmd), buildingID, bindDeviceID))
	},
}

var buildingsUnbindDeviceCmd = &cobra.Command{
	Use:   "unbind-device",
	Short: "Detach a device from its building",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Buildings().UnbindDevice(ctxOf(cmd), bindDeviceID))
	},
}

var buildingsBindNvrCmd = &cobra.Command{
	Use:   "bind-nvr",
	Short: "Bind an NVR to a building",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Buildings().BindNvr(ctxOf(cmd), buildingID, bindNvrID))
	},
}

var buildingsUnbindNvrCmd = &cobra.Command{
	Use:   "unbind-nvr",
	Short: "Detach an NVR from its building",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Buildings().UnbindNvr(ctxOf(cmd), bindNvrID))
	},
}

func init() {
	rootCmd.AddCommand(buildingsCmd)

	buildingsCmd.AddCommand(buildingsListCmd)
	buildingsListCmd.Flags().StringVar(&buildingKeyword, "keyword", "", "Case-insensitive match on name or ismartid")

	for _, c := range []*cobra.Command{buildingsGetCmd, buildingsUpdateCmd, buildingsDeleteCmd} {
		buildingsCmd.AddCommand(c)
		c.Flags().Int64Var(&buildingID, "id", 0, "Building ID")
		_ = c.MarkFlagRequired("id")
	}

	for _, c := range []*cobra.Command{buildingsCreateCmd, buildingsUpdateCmd} {
		c.Flags().StringVar(&buildingIsmartid, "ismartid", "", "Building identifier")
		c.Flags().StringVar(&buildingName, "name", "", "Display name")
		c.Flags().StringVar(&buildingRemark, "remark", "", "Free text remark")
		_ = c.MarkFlagRequired("ismartid")
		_ = c.MarkFlagRequired("name")
	}
	buildingsCmd.AddCommand(buildingsCreateCmd)

	buildingsCmd.AddCommand(buildingsBindDeviceCmd)
	buildingsBindDeviceCmd.Flags().Int64Var(&buildingID, "building", 0, "Building ID")
	buildingsBindDeviceCmd.Flags().Int64Var(&bindDeviceID, "device", 0, "Device ID")
	_ = buildingsBindDeviceCmd.MarkFlagRequired("building")
	_ = buildingsBindDeviceCmd.MarkFlagRequired("device")

	buildingsCmd.AddCommand(buildingsUnbindDeviceCmd)
	buildingsUnbindDeviceCmd.Flags().Int64Var(&bindDeviceID, "device", 0, "Device ID")
	_ = buildingsUnbindDeviceCmd.MarkFlagRequired("device")

	buildingsCmd.AddCommand(buildingsBindNvrCmd)
	buildingsBindNvrCmd.Flags().Int64Var(&buildingID, "building", 0, "Building ID")
	buildingsBindNvrCmd.Flags().Int64Var(&bindNvrID, "nvr", 0, "NVR ID")
	_ = buildingsBindNvrCmd.MarkFlagRequired("building")
	_ = buildingsBindNvrCmd.MarkFlagRequired("nvr")

	buildingsCmd.AddCommand(buildingsUnbindNvrCmd)
	buildingsUnbindNvrCmd.Flags().Int64Var(&bindNvrID, "nvr", 0, "NVR ID")
	_ = buildingsUnbindNvrCmd.MarkFlagRequired("nvr")
}
