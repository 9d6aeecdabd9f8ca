package main

import "github.com/ganot/worklog/cmd"

func main() {
	cmd.Execute()
}
