package rules

import "github.com/keygrep/keygrep/internal/types"

// builtinDef is the compact table form built-in rules are declared in. Each
// entry becomes one PatternRule at catalog build time.
type builtinDef struct {
	id          string
	description string
	severity    types.Severity
	category    types.Category
	pattern     string
	secretGroup int
	keywords    []string
}

var builtinDefs = []builtinDef{
	// Cloud providers
	{
		id: "aws-access-key-id", description: "AWS access key ID",
		severity: types.SevHigh, category: types.CatCloudProvider,
		pattern:  `\b((?:AKIA|ASIA|ABIA|ACCA)[0-9A-Z]{16})\b`,
		keywords: []string{"akia", "asia", "abia", "acca"},
	},
	{
		id: "aws-secret-access-key", description: "AWS secret access key",
		severity: types.SevCritical, category: types.CatCloudProvider,
		pattern:     `(?i)aws[_\-]?secret[_\-]?(?:access[_\-]?)?key["'\s]*[:=]\s*["']?([A-Za-z0-9/+=]{40})\b`,
		secretGroup: 1,
		keywords:    []string{"aws"},
	},
	{
		id: "google-api-key", description: "Google API key",
		severity: types.SevHigh, category: types.CatCloudProvider,
		pattern:  `\bAIza[0-9A-Za-z\-_]{35}\b`,
		keywords: []string{"aiza"},
	},
	{
		id: "gcp-service-account", description: "GCP service account credential file",
		severity: types.SevCritical, category: types.CatCloudProvider,
		pattern:  `(?i)"type"\s*:\s*"service_account"`,
		keywords: []string{"service_account"},
	},
	{
		id: "azure-storage-key", description: "Azure storage account key",
		severity: types.SevCritical, category: types.CatCloudProvider,
		pattern:     `(?i)AccountKey\s*=\s*([A-Za-z0-9+/=]{88})`,
		secretGroup: 1,
		keywords:    []string{"accountkey"},
	},
	{
		id: "digitalocean-token", description: "DigitalOcean personal access token",
		severity: types.SevHigh, category: types.CatCloudProvider,
		pattern:  `\bdo[po]_v1_[a-f0-9]{64}\b`,
		keywords: []string{"dop_v1_", "doo_v1_"},
	},
	{
		id: "heroku-api-key", description: "Heroku API key",
		severity: types.SevMedium, category: types.CatCloudProvider,
		pattern:     `(?i)heroku[a-z0-9_ .\-]{0,20}[:=]\s*["']?([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\b`,
		secretGroup: 1,
		keywords:    []string{"heroku"},
	},

	// Version-control and platform tokens
	{
		id: "github-token", description: "GitHub personal access token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\b(gh[pousr]_[A-Za-z0-9]{36,255})\b`,
		keywords: []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_"},
	},
	{
		id: "github-fine-grained-token", description: "GitHub fine-grained personal access token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\bgithub_pat_[A-Za-z0-9_]{82}\b`,
		keywords: []string{"github_pat_"},
	},
	{
		id: "gitlab-token", description: "GitLab personal access token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\bglpat-[A-Za-z0-9\-_]{20,}\b`,
		keywords: []string{"glpat-"},
	},
	{
		id: "slack-token", description: "Slack token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\bxox[baprs]-[0-9A-Za-z\-]{10,}\b`,
		keywords: []string{"xox"},
	},
	{
		id: "slack-webhook", description: "Slack incoming webhook URL",
		severity: types.SevMedium, category: types.CatCredential,
		pattern:  `https://hooks\.slack\.com/services/T[A-Za-z0-9_/]{8,}`,
		keywords: []string{"hooks.slack.com"},
	},
	{
		id: "telegram-bot-token", description: "Telegram bot token",
		severity: types.SevMedium, category: types.CatToken,
		pattern: `\b[0-9]{8,10}:AA[A-Za-z0-9_\-]{33}\b`,
	},
	{
		id: "dockerhub-token", description: "Docker Hub personal access token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\bdckr_pat_[A-Za-z0-9_\-]{27,}\b`,
		keywords: []string{"dckr_pat_"},
	},

	// Payment and SaaS API keys
	{
		id: "stripe-secret-key", description: "Stripe live secret key",
		severity: types.SevCritical, category: types.CatAPIKey,
		pattern:  `\bsk_live_[A-Za-z0-9]{24,}\b`,
		keywords: []string{"sk_live_"},
	},
	{
		id: "stripe-test-key", description: "Stripe test secret key",
		severity: types.SevLow, category: types.CatAPIKey,
		pattern:  `\bsk_test_[A-Za-z0-9]{24,}\b`,
		keywords: []string{"sk_test_"},
	},
	{
		id: "sendgrid-api-key", description: "SendGrid API key",
		severity: types.SevHigh, category: types.CatAPIKey,
		pattern:  `\bSG\.[A-Za-z0-9_\-]{22}\.[A-Za-z0-9_\-]{43}\b`,
		keywords: []string{"sg."},
	},
	{
		id: "mailgun-api-key", description: "Mailgun API key",
		severity: types.SevMedium, category: types.CatAPIKey,
		pattern:  `\bkey-[0-9a-f]{32}\b`,
		keywords: []string{"key-"},
	},
	{
		id: "twilio-api-key", description: "Twilio API key SID",
		severity: types.SevMedium, category: types.CatAPIKey,
		pattern:  `\bSK[0-9a-fA-F]{32}\b`,
		keywords: []string{"sk"},
	},
	{
		id: "openai-api-key", description: "OpenAI API key",
		severity: types.SevHigh, category: types.CatAPIKey,
		pattern:  `\bsk-(?:proj-)?[A-Za-z0-9_\-]{20,}\b`,
		keywords: []string{"sk-"},
	},
	{
		id: "anthropic-api-key", description: "Anthropic API key",
		severity: types.SevCritical, category: types.CatAPIKey,
		pattern:  `\bsk-ant-[A-Za-z0-9\-_]{24,}\b`,
		keywords: []string{"sk-ant-"},
	},
	{
		id: "npm-token", description: "npm access token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\bnpm_[A-Za-z0-9]{36}\b`,
		keywords: []string{"npm_"},
	},
	{
		id: "pypi-token", description: "PyPI upload token",
		severity: types.SevHigh, category: types.CatToken,
		pattern:  `\bpypi-AgEIcHlwaS5vcmc[A-Za-z0-9\-_]{50,}\b`,
		keywords: []string{"pypi-"},
	},

	// Keys, certificates, structured credentials
	{
		id: "private-key", description: "Private key material",
		severity: types.SevCritical, category: types.CatPrivateKey,
		pattern:  `-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP |ENCRYPTED )?PRIVATE KEY(?: BLOCK)?-----`,
		keywords: []string{"private key"},
	},
	{
		id: "certificate", description: "PEM certificate block",
		severity: types.SevInfo, category: types.CatCertificate,
		pattern:  `-----BEGIN CERTIFICATE-----`,
		keywords: []string{"begin certificate"},
	},
	{
		id: "jwt", description: "JSON Web Token",
		severity: types.SevMedium, category: types.CatToken,
		pattern:  `\beyJ[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{10,}\b`,
		keywords: []string{"eyj"},
	},
	{
		id: "connection-string", description: "Database URI with embedded credentials",
		severity: types.SevHigh, category: types.CatConnectionString,
		pattern:     `(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqps?|mssql)://[^\s:@/]+:([^\s@/]+)@`,
		secretGroup: 1,
		keywords:    []string{"://"},
	},

	// Generic assignments
	{
		id: "generic-password", description: "Hard-coded password assignment",
		severity: types.SevMedium, category: types.CatPassword,
		pattern:     `(?i)(?:password|passwd|pwd)["'\s]*[:=]\s*["']([^"']{6,})["']`,
		secretGroup: 1,
		keywords:    []string{"password", "passwd", "pwd"},
	},
	{
		id: "generic-api-key", description: "Hard-coded API key assignment",
		severity: types.SevMedium, category: types.CatAPIKey,
		pattern:     `(?i)(?:api[_\-]?key|apikey|secret[_\-]?key|access[_\-]?token)["'\s]*[:=]\s*["']([A-Za-z0-9+/=_\-]{16,})["']`,
		secretGroup: 1,
		keywords:    []string{"api", "secret", "token"},
	},
}

// Builtin compiles the built-in rule set. Built-in patterns are fixed at
// compile time, so a failure here is a programming error.
func Builtin() []Rule {
	out := make([]Rule, 0, len(builtinDefs))
	for _, d := range builtinDefs {
		r, err := NewPatternRule(d.id, d.description, d.pattern, d.severity, d.category, d.keywords, d.secretGroup)
		if err != nil {
			panic("builtin rule " + d.id + ": " + err.Error())
		}
		out = append(out, r)
	}
	return out
}
