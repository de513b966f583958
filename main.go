package main

import "github.com/jmehdipour/customer-lab/cmd"

func main() {
	cmd.Execute()
}
