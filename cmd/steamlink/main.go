package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ConfigFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "steamlink",
		Short: "Steam connection manager protocol client",
	}
	rootCmd.PersistentFlags().StringVarP(&ConfigFlag, "config", "c", "./", "Path to the directory containing the config file")

	runCmd.Flags().Uint64Var(&SteamIDFlag, "steam-id", 0, "SteamID to log on as")
	runCmd.Flags().Uint64Var(&MiniprofileIDFlag, "miniprofile-id", 0, "Miniprofile id owning the licenses to import")
	runCmd.Flags().StringVar(&AccountNameFlag, "account", "", "Account name")
	runCmd.Flags().StringVar(&TokenFlag, "token", "", "Web logon nonce obtained out of band")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
