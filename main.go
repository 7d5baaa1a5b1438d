package main

import "github.com/mediasweep/purgarr/cmd"

func main() {
	cmd.Execute()
}
