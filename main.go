package main

import "gitlab.com/begraf/spur/cmd"

func main() {
	cmd.Execute()
}
