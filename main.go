package main

import "github.com/talenthub/talent-hub/cmd"

func main() {
	cmd.Execute()
}
