package main

import (
	"os"

	"github.com/krisalay/lfu-cache/cmd/lfucache/cmds"
)

func main() {
	if err := cmds.New().Execute(); err != nil {
		os.Exit(1)
	}
}
