package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"icctv-admin/pkg/models"
)

var publicNetIP string

func printPublicNet(cfg models.PublicNetConfig) {
	render(cfg, func(w io.Writer) {
		fmt.Fprintf(w, "External IP:\t%s\n", cfg.ExternalIP)
	})
}

var publicNetCmd = &cobra.Command{
	Use:   "publicnet",
	Short: "Show or change the public network configuration",
}

var publicNetGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the external IP devices connect to",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := getRegistry().PublicNet().Get(ctxOf(cmd))
		exitOnErr(err)
		printPublicNet(cfg)
	},
}

var publicNetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the external IP",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := getRegistry().PublicNet().Update(ctxOf(cmd), publicNetIP)
		exitOnErr(err)
		printPublicNet(cfg)
	},
}

func init() {
	rootCmd.AddCommand(publicNetCmd)
	publicNetCmd.AddCommand(publicNetGetCmd)
	publicNetCmd.AddCommand(publicNetSetCmd)

	publicNetSetCmd.Flags().StringVar(&publicNetIP, "external-ip", "", "Public IP address")
	_ = publicNetSetCmd.MarkFlagRequired("external-ip")
}
