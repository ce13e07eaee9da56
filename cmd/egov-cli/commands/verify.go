package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks whether the credentials in config.json5 can log in to the portal.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			fatal("failed to read config", err)
		}

		service := newService(cfg)
		ok, err := service.VerifyCredentials(cmd.Context(), cfg.StudentId, cfg.Password)
		if err != nil {
			fatal("failed to reach the portal", err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "credentials rejected")
			os.Exit(1)
		}
		fmt.Println("credentials ok")
	},
}
