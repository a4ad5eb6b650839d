package render

// ChromeClass is a typed identifier for the semantic CSS classes the banner
// emits.
type ChromeClass string

const (
	ClassBanner   ChromeClass = "formstate-banner"
	ClassProgress ChromeClass = "formstate-progress"
	ClassMessage  ChromeClass = "formstate-message"
	ClassSuccess  ChromeClass = "formstate-success"
	ClassFailure  ChromeClass = "formstate-failure"
	ClassBusy     ChromeClass = "formstate-busy"
)

func defaultClasses() map[string]string {
	return map[string]string{
		"banner":   string(ClassBanner),
		"progress": string(ClassProgress),
		"message":  string(ClassMessage),
		"success":  string(ClassSuccess),
		"failure":  string(ClassFailure),
		"busy":     string(ClassBusy),
	}
}
