package util

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func PrettyPrint(data ...interface{}) error {
	fmt.Println()
	byteData, err := json.MarshalIndent(data[len(data)-1], "", " ")
	if err != nil {
		return err
	}
	if len(data) > 1 {
		fmt.Println(data[:len(data)-1]...)
	}
	fmt.Println(string(byteData))
	fmt.Println()
	return nil
}

func SetResponse(data interface{}, status int, message string) map[string]interface{} {
	response := make(map[string]interface{})
	response["data"] = nil
	if data != nil {
		response["data"] = data
	}
	response["status"] = status
	response["message"] = message
	return response
}

// RecoverGoroutinePanic must be deferred directly. errChan may be nil.
func RecoverGoroutinePanic(errChan chan<- error) {
	if r := recover(); r != nil {
		logrus.Errorf("recovered from go routine panic: %v\n%s", r, debug.Stack())
		if errChan != nil {
			errChan <- errors.Errorf("error due to panic: %v", r)
		}
	}
}

// ShortID returns the first n characters of id, or id itself when shorter.
func ShortID(id string, n int) string {
	runes := []rune(id)
	if len(runes) <= n {
		return id
	}
	return string(runes[:n])
}
