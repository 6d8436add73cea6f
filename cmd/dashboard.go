package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"icctv-admin/pkg/models"
)

type dashboard struct {
	Backend   string             `json:"backend"`
	Stats     models.DeviceStats `json:"stats"`
	PublicIP  string             `json:"public_ip"`
	Buildings int                `json:"buildings"`
	Nvrs      int                `json:"nvrs"`
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a fleet overview",
	Run: func(cmd *cobra.Command, args []string) {
		reg := getRegistry()
		ctx := ctxOf(cmd)

		var d dashboard

		// Every part is fetched even when another fails; the first error
		// decides the exit status.
		var g errgroup.Group
		g.Go(func() error {
			text, err := newClient().Health(ctx)
			if err != nil {
				d.Backend = "unreachable"
				logger.Error().Err(err).Msg("health check failed")
				return err
			}
			d.Backend = text
			return nil
		})
		g.Go(func() error {
			var err error
			d.Stats, err = reg.Devices().Stats(ctx)
			return err
		})
		g.Go(func() error {
			cfg, err := reg.PublicNet().Get(ctx)
			d.PublicIP = cfg.ExternalIP
			return err
		})
		g.Go(func() error {
			buildings := reg.Buildings()
			if err := buildings.List(ctx); err != nil {
				return err
			}
			d.Buildings = len(buildings.All())
			return nil
		})
		g.Go(func() error {
			nvrs := reg.Nvrs()
			if err := nvrs.List(ctx); err != nil {
				return err
			}
			d.Nvrs = nvrs.Page().Total
			return nil
		})
		err := g.Wait()

		render(d, func(w io.Writer) {
			fmt.Fprintf(w, "Backend:\t%s\n", d.Backend)
			fmt.Fprintf(w, "Public IP:\t%s\n", d.PublicIP)
			fmt.Fprintf(w, "Devices:\t%d (%d active, %d bound)\n", d.Stats.TotalDevices, d.Stats.ActiveDevices, d.Stats.BuildingBounded)
			fmt.Fprintf(w, "Last sync:\t%s\n", d.Stats.LastSync)
			fmt.Fprintf(w, "Buildings:\t%d\n", d.Buildings)
			fmt.Fprintf(w, "NVRs:\t%d\n", d.Nvrs)
		})
		exitOnErr(err)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
