package main

import "github.com/staffgrid/backend/cmd"

func main() {
	cmd.Execute()
}
