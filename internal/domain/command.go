package domain

import (
	"strings"
	"time"
)

// Command is a push instruction for a named device, delivered through the
// external pub/sub sink.
type Command struct {
	DeviceID string
	Command  string
	UserID   UserID
	SentAt   time.Time
}

var fixedCommands = map[string]struct{}{
	"LED1_ON":  {},
	"LED1_OFF": {},
	"LED2_ON":  {},
	"LED2_OFF": {},
	"FAN_ON":   {},
	"FAN_OFF":  {},
}

// blinkPrefix allows parameterized blink commands like "LED1_BLINK:500".
const blinkPrefix = "LED1_BLINK:"

// ValidCommand reports whether cmd is part of the device command vocabulary.
func ValidCommand(cmd string) bool {
	if _, ok := fixedCommands[cmd]; ok {
		return true
	}
	return strings.HasPrefix(cmd, blinkPrefix)
}
