package main

import (
	"github.com/daedaleanai/hbc/cmd"
)

func main() {
	cmd.Execute()
}
