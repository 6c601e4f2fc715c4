// main is the entry point for the rvss CLI.
package main

import (
	"github.com/huangsam/rvss/cmd"
	"github.com/huangsam/rvss/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
