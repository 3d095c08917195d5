package main

import "codeserver_cli/cmd"

func main() {
	cmd.Execute()
}
