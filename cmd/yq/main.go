package main

import "yuquest/cmd/yq/root"

func main() {
	root.Execute()
}
