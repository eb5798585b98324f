package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"safechat/internal/filter"
	"safechat/internal/llm"
)

// Age group labels for response tailoring.
const (
	groupPreschool       = "preschool"
	groupEarlyElementary = "early_elementary"
	groupLateElementary  = "late_elementary"
	groupEarlyTeen       = "early_teen"
	groupTeen            = "teen"
)

var chatbotPrompts = map[string]string{
	groupPreschool: `أنت مساعد ودود للأطفال في مرحلة ما قبل المدرسة. استخدم لغة بسيطة وجمل قصيرة.
كن مرحاً واستخدم أمثلة من عالمهم الصغير. تجنب الكلمات المعقدة.`,

	groupEarlyElementary: `أنت مساعد صديق للأطفال في المرحلة الابتدائية المبكرة. استخدم لغة واضحة وبسيطة.
قدم أمثلة من حياتهم اليومية. كن مشجعاً وداعماً.`,

	groupLateElementary: `أنت مرشد للأطفال في المرحلة الابتدائية المتأخرة. استخدم لغة واضحة مع بعض المفاهيم المتقدمة.
قدم أمثلة عملية وشجع التفكير النقدي.`,

	groupEarlyTeen: `أنت مرشد للأطفال في بداية مرحلة المراهقة. استخدم لغة مناسبة لعمرهم مع تقديم مفاهيم أكثر تعقيداً.
شجع الاستقلالية والتفكير النقدي.`,

	groupTeen: `أنت مرشد للمراهقين. استخدم لغة ناضجة ومناسبة لعمرهم.
شجع التفكير المستقل واتخاذ القرارات المسؤولة.`,
}

// Canned replies for failure paths; the chatbot never surfaces an error to
// the child.
const (
	replyAgeUnknown = "عذراً، حدث خطأ في تحديد عمرك. يرجى المحاولة مرة أخرى لاحقاً."
	replyLLMFailure = "عذراً، حدث خطأ في معالجة رسالتك. يرجى المحاولة مرة أخرى لاحقاً."
)

// Chatbot answers a child's question with an age-appropriate assistant
// persona. No conversation history is kept.
type Chatbot struct {
	provider llm.Provider
	ages     *filter.AgeResolver
	timeout  time.Duration
	logger   *zap.Logger
}

// NewChatbot creates a chatbot service.
func NewChatbot(provider llm.Provider, ages *filter.AgeResolver, timeout time.Duration, logger *zap.Logger) *Chatbot {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Chatbot{
		provider: provider,
		ages:     ages,
		timeout:  timeout,
		logger:   logger,
	}
}

// Reply produces the assistant's answer for the child's message. Failures
// come back as apologetic canned replies, never as errors.
func (c *Chatbot) Reply(ctx context.Context, childUsername, message string) string {
	age, ok := c.ages.Resolve(ctx, childUsername)
	if !ok {
		return replyAgeUnknown
	}

	prompt, prompted := chatbotPrompts[AgeGroup(age)]
	if !prompted {
		prompt = chatbotPrompts[groupEarlyElementary]
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.provider.Complete(reqCtx, prompt, message)
	if err != nil {
		c.logger.Error("Chatbot completion failed",
			zap.String("child", childUsername),
			zap.Error(err))
		return replyLLMFailure
	}

	return reply
}

// AgeGroup maps an age in whole years to the persona group.
func AgeGroup(age int) string {
	switch {
	case age <= 6:
		return groupPreschool
	case age <= 9:
		return groupEarlyElementary
	case age <= 12:
		return groupLateElementary
	case age <= 15:
		return groupEarlyTeen
	default:
		return groupTeen
	}
}
