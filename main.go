package main

import "github.com/devbanana/option-calculator/cmd"

var version = "0.1.0"

func main() {
	cmd.Version = version
	cmd.Execute()
}
