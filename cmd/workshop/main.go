package main

import "github.com/marcus/workshop/cmd/workshop/commands"

func main() {
	commands.Execute()
}
