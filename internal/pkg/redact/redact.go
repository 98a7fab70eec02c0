package redact

import "strings"

// Login маскирует идентификатор входа (e-mail) для логов:
// первые две руны локальной части сохраняются, остальное скрывается.
func Login(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	masked := "***"
	if len(local) > 2 {
		masked = string(local[:2]) + "***"
	}

	return masked + "@" + domain
}

func Token() string  { return "[REDACTED_TOKEN]" }
func Secret() string { return "[REDACTED_SECRET]" }
