package main

import (
	"fmt"
	"os"

	"github.com/crucial707/recipe-api/cmd/cli/auth"
	"github.com/crucial707/recipe-api/cmd/cli/recipes"
	"github.com/crucial707/recipe-api/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	recipes.InitRecipes(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
