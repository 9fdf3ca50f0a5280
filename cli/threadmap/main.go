package main

import (
	"os"

	threadmapcmder "github.com/threadmapco/threadmap/cmd/threadmap"
)

func main() {
	cmd := threadmapcmder.NewThreadmapCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
