package main

import (
	"tubelens/cmd/cmd"
	"tubelens/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
