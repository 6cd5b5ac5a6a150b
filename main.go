package main

import (
	"os"

	"github.com/camden-git/whattoeat/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
