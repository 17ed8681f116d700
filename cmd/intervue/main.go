package main

import "github.com/pedrosal/intervue/internal/commands"

func main() {
	commands.Execute()
}
