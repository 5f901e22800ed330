package main

import "github.com/inovacc/miniature/cmd"

func main() {
	cmd.Execute()
}
