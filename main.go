package main

import (
	"os"

	"github.com/MediBoard/MediBoard/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
