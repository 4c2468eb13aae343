package main

import (
	"fmt"
	"os"

	"github.com/mallang/recipe-api/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "recipe-api: %v\n", err)
		os.Exit(1)
	}
}
