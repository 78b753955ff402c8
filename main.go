package main

import "readmegen/cmd"

func main() {
	cmd.Execute()
}
