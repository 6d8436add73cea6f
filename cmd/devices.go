package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"icctv-admin/pkg/models"
)

var (
	deviceID           int64
	deviceIsmartid     string
	deviceName         string
	deviceAuthPort     int
	deviceSSHPort      int
	deviceActive       bool
	deviceUserChannels []int
	deviceAllChannels  []int
)

func printDevices(devices []models.Device) {
	render(devices, func(w io.Writer) {
		if len(devices) == 0 {
			fmt.Fprintln(w, "No devices found.")
			return
		}
		header(w, "ID", "ISMARTID", "NAME", "AUTH PORT", "SSH PORT", "ACTIVE", "CHANNELS")
		for _, d := range devices {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
				d.ID, d.Ismartid, d.Name, d.AuthServiceRemotePort, d.SSHRemotePort, yesNo(d.IsActive), joinInts(d.UserChannels))
		}
	})
}

// Parent Command
var devicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"device"},
	Short:   "Manage OrangePi relay devices",
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices, optionally filtered by ismartid",
	Run: func(cmd *cobra.Command, args []string) {
		devices := getRegistry().Devices()

		exitOnErr(devices.Search(ctxOf(cmd), deviceIsmartid))
		printDevices(devices.Items())
	},
}

var devicesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one device",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := getRegistry().Devices().Fetch(ctxOf(cmd), deviceID)
		exitOnErr(err)
		printDevices([]models.Device{d})
	},
}

var devicesCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Register a device",
	Example: `  icctv-admin devices create --ismartid ismart_001 --name "Lobby relay" --auth-port 7001 --ssh-port 6001`,
	Run: func(cmd *cobra.Command, args []string) {
		payload := models.DeviceCreatePayload{
			Ismartid:              deviceIsmartid,
			Name:                  deviceName,
			AuthServiceRemotePort: deviceAuthPort,
			SSHRemotePort:         deviceSSHPort,
			UserChannels:          deviceUserChannels,
			AllChannels:           deviceAllChannels,
		}
		if cmd.Flags().Changed("active") {
			payload.IsActive = &deviceActive
		}

		devices := getRegistry().Devices()
		exitOnErr(devices.Create(ctxOf(cmd), payload))
		printDevices(devices.Items())
	},
}

var devicesUpdateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Change fields of a device; only the flags given are sent",
	Example: `  icctv-admin devices update --id 3 --active=false`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		var payload models.DeviceUpdatePayload
		if flags.Changed("ismartid") {
			payload.Ismartid = &deviceIsmartid
		}
		if flags.Changed("name") {
			payload.Name = &deviceName
		}
		if flags.Changed("auth-port") {
			payload.AuthServiceRemotePort = &deviceAuthPort
		}
		if flags.Changed("ssh-port") {
			payload.SSHRemotePort = &deviceSSHPort
		}
		if flags.Changed("active") {
			payload.IsActive = &deviceActive
		}
		if flags.Changed("user-channels") {
			payload.UserChannels = deviceUserChannels
		}
		if flags.Changed("all-channels") {
			payload.AllChannels = deviceAllChannels
		}

		devices := getRegistry().Devices()
		exitOnErr(devices.Update(ctxOf(cmd), payload, deviceID))
		if d, ok := devices.Lookup(deviceID); ok {
			printDevices([]models.Device{d})
		}
	},
}

var devicesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a device by ID",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnErr(getRegistry().Devices().Remove(ctxOf(cmd), deviceID))
	},
}

var devicesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the fleet summary",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := getRegistry().Devices().Stats(ctxOf(cmd))
		exitOnErr(err)

		render(stats, func(w io.Writer) {
			fmt.Fprintf(w, "Devices:\t%d\n", stats.TotalDevices)
			fmt.Fprintf(w, "Active:\t%d\n", stats.ActiveDevices)
			fmt.Fprintf(w, "Bound to a building:\t%d\n", stats.BuildingBounded)
			fmt.Fprintf(w, "Last sync:\t%s\n", stats.LastSync)
		})
	},
}

func deviceFieldFlags(c *cobra.Command) {
	c.Flags().StringVar(&deviceIsmartid, "ismartid", "", "Device identifier")
	c.Flags().StringVar(&deviceName, "name", "", "Display name")
	c.Flags().IntVar(&deviceAuthPort, "auth-port", 0, "Remote port of the auth service tunnel")
	c.Flags().IntVar(&deviceSSHPort, "ssh-port", 0, "Remote port of the SSH tunnel")
	c.Flags().BoolVar(&deviceActive, "active", true, "Whether the device is active")
	c.Flags().IntSliceVar(&deviceUserChannels, "user-channels", nil, "Channels visible to users")
	c.Flags().IntSliceVar(&deviceAllChannels, "all-channels", nil, "All channels of the device")
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.AddCommand(devicesListCmd)
	devicesListCmd.Flags().StringVar(&deviceIsmartid, "ismartid", "", "Filter by ismartid (server side)")

	devicesCmd.AddCommand(devicesGetCmd)
	devicesGetCmd.Flags().Int64Var(&deviceID, "id", 0, "Device ID")
	_ = devicesGetCmd.MarkFlagRequired("id")

	devicesCmd.AddCommand(devicesCreateCmd)
	deviceFieldFlags(devicesCreateCmd)
	_ = devicesCreateCmd.MarkFlagRequired("ismartid")
	_ = devicesCreateCmd.MarkFlagRequired("name")
	_ = devicesCreateCmd.MarkFlagRequired("auth-port")
	_ = devicesCreateCmd.MarkFlagRequired("ssh-port")

	devicesCmd.AddCommand(devicesUpdateCmd)
	deviceFieldFlags(devicesUpdateCmd)
	devicesUpdateCmd.Flags().Int64Var(&deviceID, "id", 0, "Device ID")
	_ = devicesUpdateCmd.MarkFlagRequired("id")

	devicesCmd.AddCommand(devicesDeleteCmd)
	devicesDeleteCmd.Flags().Int64Var(&deviceID, "id", 0, "Device ID")
	_ = devicesDeleteCmd.MarkFlagRequired("id")

	devicesCmd.AddCommand(devicesStatsCmd)
}
