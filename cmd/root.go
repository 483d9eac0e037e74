package cmd

import (
	"github.com/spf13/cobra"
)

var VERSION = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "monopack",
	Short:   "A Go-based PNG to 1-bit packed bytearray converter for embedded displays",
	Version: VERSION,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(bundleCmd)
}
