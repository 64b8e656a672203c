package main

import "github.com/railwayapp/henvdall/cmd/henvdall"

func main() {
	henvdall.Execute()
}
