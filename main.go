package main

import "github.com/guimove/ocpfleet/cmd"

func main() {
	cmd.Execute()
}
