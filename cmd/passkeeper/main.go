package main

import "passkeeper/cmd/passkeeper/cmd"

func main() {
	cmd.Execute()
}
