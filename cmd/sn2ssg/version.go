package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sn2ssg/sn2ssg"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sn2ssg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sn2ssg version %s\n", strings.TrimSpace(sn2ssg.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
