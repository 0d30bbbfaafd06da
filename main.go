package main

import (
	"time"

	"github.com/TestingSDK2/marketplace-notifier/cmd"
	"github.com/TestingSDK2/marketplace-notifier/util"
)

func main() {
	data := map[string]interface{}{
		"startTime":   time.Now().Format("January 02, 2006 - 03:04:05 PM MST"),
		"message":     "Starting marketplace notifier . . .",
		"codeVersion": cmd.Version,
	}
	util.PrettyPrint(data)
	cmd.New().Execute()
}
