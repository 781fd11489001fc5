package main

import "github.com/mabhi256/massifglom/cmd"

func main() {
	cmd.Execute()
}
