package main

import "product-images/cmd"

func main() {
	cmd.Execute()
}
