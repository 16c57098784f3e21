package main

import (
	"os"

	"github.com/godot-bevy/typegen/cmd/godot-typegen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
