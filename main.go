package main

import "circuit-manager/cmd"

func main() {
	cmd.Execute()
}
