package main

import (
	"fmt"
	"os"

	"go.store/internal/cli"
	"go.store/internal/storage"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*storage.FatalError); ok {
				fmt.Fprintln(os.Stderr, "fatal:", fe.Error())
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "fatal:", r)
			os.Exit(1)
		}
	}()

	cli.Execute()
}
