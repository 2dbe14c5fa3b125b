package main

import "github.com/tmattila/sharepoint-client/cmd"

func main() {
	cmd.Execute()
}
