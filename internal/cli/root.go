package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "watchparty",
	Short: "Watch videos in sync with friends from the terminal",
	Long: `Watchparty is a terminal client for a room-scoped event relay.
Join a room to chat with everyone in it and keep a shared playback
clock in sync: play, pause, and seek events propagate to every other
member in real time.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	bindEnv(rootCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bindEnv lets every flag also be set via WATCHPARTY_* environment
// variables, flags taking priority
func bindEnv(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("WATCHPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		fs := c.Flags()
		fs.VisitAll(func(f *pflag.Flag) {
			_ = v.BindPFlag(f.Name, f)
			_ = v.BindEnv(f.Name)
			if !f.Changed && v.IsSet(f.Name) {
				_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
			}
		})
	}
}
