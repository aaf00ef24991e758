package main

import (
	"os"

	"github.com/dalemusser/emailaddr/internal/emailctl"
)

func main() {
	os.Exit(emailctl.Run("emailctl", os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
