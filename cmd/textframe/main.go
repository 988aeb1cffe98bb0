package main

import "github.com/MeKo-Tech/textframe/cmd/textframe/cmd"

func main() {
	cmd.Execute()
}
