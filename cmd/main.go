package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "driver-logsheet"

func main() {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Renders FMCSA daily log sheets from trip schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newRenderCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
