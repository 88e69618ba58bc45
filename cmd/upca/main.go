package main

import "github.com/MeKo-Tech/upca/cmd/upca/cmd"

func main() {
	cmd.Execute()
}
