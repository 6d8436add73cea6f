package main

import "icctv-admin/cmd"

func main() {
	cmd.Execute()
}
