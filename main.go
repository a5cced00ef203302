package main

import "github.com/they4kman/broadside/cmd"

func main() {
	cmd.Execute()
}
