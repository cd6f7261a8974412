package main

import "backup-manager/cmd"

func main() {
	cmd.Execute()
}
