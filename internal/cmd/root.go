// Package cmd implements the arena command line.
package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arena/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Multi-agent debate arena",
	Long: `Arena stages a structured debate between an Affirmative and a Negative
agent on a topic, optionally grounded in a local knowledge base, and closes
with a Judge weighing the key points of each side.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/arena/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// API keys commonly live in a local .env; a missing file is fine
	_ = godotenv.Load()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. ARENA_DEBATE_ROUNDS for debate.rounds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// debateFlags registers the flags shared by commands that start a debate.
// They are bound to viper when the command runs, so each command's own
// flags win.
func debateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("topic", "t", "", "debate topic")
	cmd.Flags().IntP("rounds", "r", 0, "number of rebuttal rounds")
	cmd.Flags().Bool("rag", false, "ground arguments in the knowledge base")
	cmd.PreRunE = bindDebateFlags
}

func bindDebateFlags(cmd *cobra.Command, args []string) error {
	for key, flag := range map[string]string{
		"debate.topic":      "topic",
		"debate.rounds":     "rounds",
		"debate.enable_rag": "rag",
	} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
