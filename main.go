package main

import "dummy-importer/cmd"

func main() {
	cmd.Execute()
}
