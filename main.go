package main

import "order-menu/cmd"

func main() {
	cmd.Execute()
}
