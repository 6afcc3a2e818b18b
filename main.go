package main

import "github.com/mlahtinen/bookfind/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
