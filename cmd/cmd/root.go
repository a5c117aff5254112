/*
Copyright © 2025 Your Name

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

	"tubelens/cmd/handlers"
	"tubelens/internal/config"
	"tubelens/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tubelens",
	Short: "tubelens analyzes a channel's performance and drafts content ideas",
	Long: `tubelens fetches a channel's recent items and comments, aggregates
performance metrics, classifies the audience's comments, and generates
data-grounded content ideas through a chain of generative models.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tubelens.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(handlers.NewAnalyzeCmd())
	rootCmd.AddCommand(handlers.NewCommentsCmd())
	rootCmd.AddCommand(handlers.NewIdeasCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		os.Exit(1)
	}
	if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); lvl != "" {
		logger.SetLevel(lvl)
	} else if cfg.Logging.Level != "" {
		logger.SetLevel(cfg.Logging.Level)
	}
}
