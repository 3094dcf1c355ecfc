// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mediboard",
	Short: "MediBoard is the admin backend of the hospital display clients",
	Long: `MediBoard serves the JSON API behind the hospital admin dashboard,
the slideshow and the eCatalog: doctors and their leaves, catalog and price
lists, promos, posts, newsletters and the settings shown on the displays.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
