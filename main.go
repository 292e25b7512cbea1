package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/HeroicKatora/vid-from-pdf/cmd"
	"github.com/HeroicKatora/vid-from-pdf/config"
)

func main() {
	if level, err := logrus.ParseLevel(config.LogLevel()); err == nil {
		logrus.SetLevel(level)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
