package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/reflectd/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a configuration file without starting the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := config.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		responses := 0
		for _, ep := range f.Endpoints {
			responses += len(ep.Responses)
		}
		fmt.Printf("%s: OK (%d endpoints, %d responses)\n", args[0], len(f.Endpoints), responses)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
