package main

import "github.com/notargets/tetexport/cmd"

func main() {
	cmd.Execute()
}
