/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "obratno",
	Short: "Iterative back-translation quality improvement",
	Long: `A CLI application that translates English text to Russian and iteratively
improves the translation: each round back-translates the candidate to English,
scores it against the original with an LLM, and applies suggested refinements.

Without an LLM token the tool still runs end-to-end, producing plain
translate/back-translate pairs with no scores.

Use "obratno improve --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.obratno.yaml)")
}

// initConfig reads the optional config file and the OBRATNO_* environment.
// Flag values win over both.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".obratno")
		}
	}

	viper.SetEnvPrefix("obratno")
	viper.AutomaticEnv()
	// The token name GigaChat users already have exported.
	viper.BindEnv("gigachat-token", "GIGACHAT_TOKEN", "OBRATNO_GIGACHAT_TOKEN")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
