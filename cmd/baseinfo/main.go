package main

import (
	"os"

	"baseinfo/cmd/baseinfo/command"
)

func main() {
	os.Exit(command.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
