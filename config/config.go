package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/HeroicKatora/vid-from-pdf/internal/mkv"
)

var v *viper.Viper

func init() {
	v = viper.New()

	// Set default values
	v.SetDefault("memory.budget", mkv.DefaultMemory)
	v.SetDefault("app.name", mkv.DefaultApp)
	v.SetDefault("log.level", "warn")

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("memory.budget", "VFP_MEMORY_BUDGET")
	v.BindEnv("app.name", "VFP_APP_NAME")
	v.BindEnv("log.level", "VFP_LOG_LEVEL")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		filepath.Join(xdg.Home, ".vfp"),
		"/etc/vfp",
	}

	for _, path := range configPaths {
		expandedPath := os.ExpandEnv(path)
		v.AddConfigPath(expandedPath)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
		// Config file not found; ignore error and use defaults
	}
}

// MemoryBudget returns the advisory staging buffer size in bytes
func MemoryBudget() int {
	return v.GetInt("memory.budget")
}

// AppName returns the MuxingApp/WritingApp string stamped into Segment Info
func AppName() string {
	return v.GetString("app.name")
}

// LogLevel returns the logrus level name applied at startup
func LogLevel() string {
	return v.GetString("log.level")
}
