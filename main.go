/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/charm/cmd"
	"github.com/josephgoksu/charm/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
