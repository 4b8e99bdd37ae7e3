//go:build cli
// +build cli

package main

import (
	_ "libas.GO/custom"

	"libas.GO/cmd"
	"libas.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
