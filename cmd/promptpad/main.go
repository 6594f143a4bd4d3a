package main

import "github.com/isaacphi/promptpad/internal/ui/cli"

func main() {
	cli.Execute()
}
