package main

import (
	"fmt"
	"os"

	"lecturegrid/internal/config"
)

func main() {
	app := NewApp(config.Load())

	rootCmd := SetupCommands(app)
	if err := rootCmd.Execute(); err != nil {
		app.Close()
		fmt.Println(err)
		os.Exit(1)
	}
}
