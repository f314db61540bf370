package envar

import "os"

const (
	ButtonConfig = "BUTTON_CONFIG"
	ButtonAddr   = "BUTTON_ADDR"
)

func Getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}
