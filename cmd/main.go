package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "appointment-service",
	Short: "SMC-AppointmentService: запись заявителей на прием в агентства",
	Long: `Сервис записи на прием для открытия счета: каталог агентств,
свободные часы, запись с проверкой лимитов и бэк-офис.`,
	SilenceUsage: true,
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = defaultConfigPath
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "путь к config.toml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
