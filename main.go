package main

import "github.com/tanq16/pgfetch/cmd"

func main() {
	cmd.Execute()
}
