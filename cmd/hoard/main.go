package main

import "github.com/zoobzio/hoard/cmd/hoard/cmd"

func main() {
	cmd.Execute()
}
