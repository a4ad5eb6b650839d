package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage flattens an opaque payload to text and strips any markup it
// carries. Payloads often wrap server error responses, so the strict policy
// applies: no elements survive, only text content.
func sanitizeMessage(payload any) string {
	raw := strings.TrimSpace(fmt.Sprint(payload))
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(messageSanitizer().Sanitize(raw))
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
