package main

import "github.com/devicelab-dev/uireport/pkg/cli"

func main() {
	cli.Execute()
}
