package classifier

import (
	"context"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"safechat/internal/llm"
)

// Category is the risk category of a message. The ordinal doubles as the
// risk level: 0 is safe and severity increases with the value.
type Category int

const (
	CategorySafe Category = iota
	CategoryInappropriateLanguage
	CategorySexualContent
	CategoryDrugRelated
)

// RiskLevel returns the numeric severity of the category.
func (c Category) RiskLevel() int {
	return int(c)
}

// String returns the wire name of the category as stored in notification
// records and returned to API callers.
func (c Category) String() string {
	switch c {
	case CategoryInappropriateLanguage:
		return "inappropriate_content"
	case CategorySexualContent:
		return "sexual_content"
	case CategoryDrugRelated:
		return "drug_related"
	default:
		return "safe"
	}
}

// Result is the structured outcome of classifying one message. OffendingTokens
// is empty when the message is safe.
type Result struct {
	Category        Category
	RiskLevel       int
	OffendingTokens []string
}

var safeResult = Result{Category: CategorySafe, RiskLevel: 0}

// Config for the classifier.
type Config struct {
	Tables  Tables
	Timeout time.Duration
}

// Classifier screens message text through an LLM provider in two stages:
// first a category digit, then (for flagged text only) the list of offending
// words. It never fails the caller; any transport or parse problem degrades
// to the safe result so message delivery is not blocked.
type Classifier struct {
	provider llm.Provider
	tables   Tables
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a classifier. Zero-value config fields fall back to the
// built-in keyword tables and a 15 second per-request timeout.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Classifier {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if len(cfg.Tables.SafeKeywords) == 0 && len(cfg.Tables.InappropriateKeywords) == 0 &&
		len(cfg.Tables.SexualKeywords) == 0 && len(cfg.Tables.DrugKeywords) == 0 {
		cfg.Tables = DefaultTables()
	}

	return &Classifier{
		provider: provider,
		tables:   cfg.Tables,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Classify runs the two-stage classification protocol on text.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.provider.Complete(reqCtx, categoryPrompt, text)
	if err != nil {
		c.logger.Warn("Classification unavailable, treating message as safe", zap.Error(err))
		return safeResult
	}

	category := c.parseCategory(raw)
	if category == CategorySafe {
		return safeResult
	}

	tokCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tokensRaw, err := c.provider.Complete(tokCtx, tokensPrompt, text)
	if err != nil {
		// The flagged verdict without its tokens cannot be masked reliably,
		// so the whole classification degrades to safe.
		c.logger.Warn("Token extraction failed, treating message as safe", zap.Error(err))
		return safeResult
	}

	return Result{
		Category:        category,
		RiskLevel:       category.RiskLevel(),
		OffendingTokens: splitTokens(tokensRaw),
	}
}

// parseCategory extracts the category from a free-form model reply. Only the
// first digit in the reply is considered; an out-of-range digit or a reply
// with no digit at all falls through to the keyword tables.
func (c *Classifier) parseCategory(response string) Category {
	for _, r := range response {
		if unicode.IsDigit(r) {
			if r >= '0' && r <= '3' {
				return Category(r - '0')
			}
			break
		}
	}

	lower := strings.ToLower(response)
	switch {
	case containsAny(lower, c.tables.SafeKeywords):
		return CategorySafe
	case containsAny(lower, c.tables.InappropriateKeywords):
		return CategoryInappropriateLanguage
	case containsAny(lower, c.tables.SexualKeywords):
		return CategorySexualContent
	case containsAny(lower, c.tables.DrugKeywords):
		return CategoryDrugRelated
	default:
		return CategorySafe
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// splitTokens turns a one-word-per-line reply into an ordered token list.
func splitTokens(response string) []string {
	var tokens []string
	for _, line := range strings.Split(response, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}
