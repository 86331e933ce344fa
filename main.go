package main

import "collex-backend/cmd"

func main() {
	cmd.Run()
}
