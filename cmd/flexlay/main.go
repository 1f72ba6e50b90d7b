package main

import "flexlay/cmd"

func main() {
	cmd.Execute()
}
