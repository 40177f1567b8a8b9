package main

import "github.com/brasa-dev/brasa/cmd/brasa/commands"

func main() {
	commands.Execute()
}
