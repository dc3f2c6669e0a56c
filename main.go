package main

import (
	"os"

	"github.com/umsproject/ums/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
