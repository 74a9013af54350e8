package main

import "github.com/akashjainn/portfolio-sub000/cmd"

func main() {
	cmd.Execute()
}
