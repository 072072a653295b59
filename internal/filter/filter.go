package filter

import (
	"regexp"
	"strings"
)

// Темы, которые касаются обычных пользователей
var relevantKeywords = []string{
	// Устройства и приложения
	"android", "iphone", "ios", "смартфон", "телефон",
	"windows", "macos", "mac", "ноутбук", "компьютер",
	"chrome", "firefox", "safari", "браузер", "edge",
	"telegram", "whatsapp", "viber", "signal", "мессенджер",
	"instagram", "facebook", "вконтакте", "vk", "tiktok", "youtube",
	"gmail", "почта", "email", "outlook",
	"банк", "сбербанк", "тинькофф", "онлайн-банк", "карта", "оплата",
	"wi-fi", "wifi", "роутер", "bluetooth",

	// Угрозы для людей
	"фишинг", "phishing", "мошенник", "мошенничество", "развод",
	"пароль", "password", "взлом аккаунта", "украли аккаунт",
	"утечка данных", "слив", "персональные данные",
	"вирус", "троян", "шпион", "слежка", "stalkerware",
	"спам", "звонки мошенников", "смс мошенники",
	"кража денег", "списали деньги", "украли деньги",
	"шантаж", "вымогатель", "ransomware",
	"двухфакторная", "2fa", "sms-код", "подтверждение",
	"vpn", "приватность", "tracking",
	"расширение браузера", "приложение", "вредоносное приложение",
	"qr-код", "qr код", "поддельный сайт",
}

// Темы, которые НЕ интересны обычным людям — пропускаем
var skipKeywords = []string{
	// Корпоративное
	"корпоративн", "enterprise", "b2b", "soc ", "siem",
	"apt ", "apt-", "таргетированн", "целевая атака",
	"инфраструктур", "периметр", "сегментац",

	// Специфичные технологии
	"kubernetes", "docker", "контейнер", "облачн",
	"api ", "sdk", "middleware", "backend",
	"sql injection", "xss", "csrf", "ssrf",
	"cve-", "cvss", "nist", "mitre",

	// Серверное/админское
	"сервер", "server", "linux ", "unix", "freebsd",
	"apache", "nginx", "iis", "exchange",
	"active directory", "ldap", "kerberos",
	"ssh", "telnet", "ftp", "smtp",
	"firewall", "ids", "ips", "waf",

	// Бизнес-новости
	"акции", "биржа", "инвестиц", "ipo", "капитализац",
	"назначен", "покидает", "гендиректор", "ceo",
	"партнёрство", "сделка", "поглощен", "слияние",

	// Прочее нерелевантное
	"криптовалют", "биткоин", "майнинг",
	"военн", "армия", "разведка", "шпионаж государств",
}

// containsAny distinguishes phrases and short words (avoids "ips" matching "clips").
func containsAny(text string, keywords []string) bool {
	return countMatches(text, keywords) > 0
}

func countMatches(text string, keywords []string) int {
	text = strings.ToLower(text)
	count := 0

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		// Phrases (with spaces) and fragment keywords ending in nothing special
		// match as plain substrings.
		if strings.Contains(k, " ") {
			if strings.Contains(text, k) {
				count++
			}
			continue
		}

		// Short latin tokens (<=3) need word boundaries, so "vpn" does not
		// fire inside unrelated words.
		if len(k) <= 3 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
			if re.MatchString(text) {
				count++
			}
			continue
		}

		if strings.Contains(text, k) {
			count++
		}
	}
	return count
}

// Relevant reports whether an item is worth posting for ordinary users:
// no skip topic and at least one relevant topic.
func Relevant(title, summary string) bool {
	text := title + " " + summary
	if containsAny(text, skipKeywords) {
		return false
	}
	return containsAny(text, relevantKeywords)
}

// Score counts relevant keyword hits; used to order candidates of equal
// freshness. Zero means not relevant (or skipped).
func Score(title, summary string) int {
	text := title + " " + summary
	if containsAny(text, skipKeywords) {
		return 0
	}
	return countMatches(text, relevantKeywords)
}
