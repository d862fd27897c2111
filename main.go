package main

import "github.com/automata-tools/deskagent/cmd"

func main() {
	cmd.Execute()
}
