package filter

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"safechat/internal/classifier"
	"safechat/internal/models"
	"safechat/internal/policy"
)

// MessageClassifier is the classification capability consumed by the
// pipeline. Implementations fail open: they return the safe result rather
// than an error when the external classifier is unavailable.
type MessageClassifier interface {
	Classify(ctx context.Context, text string) classifier.Result
}

// NotificationRecorder persists parent-alert audit records. Create resolves
// the receiver's current guardian and fills in ParentUsername, ID and
// CreatedAt on success.
type NotificationRecorder interface {
	Create(ctx context.Context, n *models.Notification) error
}

// ParentNotifier pushes an out-of-band alert to the parent after the record
// is written. Push failures are the pipeline's to log and swallow.
type ParentNotifier interface {
	NotifyParent(ctx context.Context, n *models.Notification) error
}

// Pipeline is the message safety filter: classify, decide on parental
// notification, mask offending tokens, and record an audit notification when
// warranted. Each call is independent; the pipeline holds no mutable state.
type Pipeline struct {
	classifier MessageClassifier
	ages       *AgeResolver
	policy     *policy.Policy
	recorder   NotificationRecorder
	notifier   ParentNotifier
	logger     *zap.Logger
}

// NewPipeline creates a pipeline. notifier may be nil when no push channel is
// configured.
func NewPipeline(
	messageClassifier MessageClassifier,
	ages *AgeResolver,
	notifyPolicy *policy.Policy,
	recorder NotificationRecorder,
	notifier ParentNotifier,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		classifier: messageClassifier,
		ages:       ages,
		policy:     notifyPolicy,
		recorder:   recorder,
		notifier:   notifier,
		logger:     logger,
	}
}

// FilterMessage screens one child-to-child message. It always produces a
// result: classification failures degrade to safe, and recording failures are
// logged without affecting the returned message.
func (p *Pipeline) FilterMessage(ctx context.Context, content, senderUsername, receiverUsername string) models.FilteredMessage {
	result := p.classifier.Classify(ctx, content)

	if result.Category == classifier.CategorySafe {
		return models.FilteredMessage{
			Content:    content,
			IsFiltered: false,
			RiskLevel:  0,
		}
	}

	age, ageKnown := p.ages.Resolve(ctx, receiverUsername)
	notify := p.policy.ShouldNotify(result.Category, age, ageKnown)
	masked := MaskTokens(content, result.OffendingTokens)
	riskType := result.Category.String()

	filtered := models.FilteredMessage{
		Content:            masked,
		IsFiltered:         true,
		RiskType:           &riskType,
		RiskLevel:          result.RiskLevel,
		ShouldNotifyParent: notify,
	}

	if notify {
		p.recordNotification(ctx, &models.Notification{
			CorrelationID:         uuid.New().String(),
			SenderChildUsername:   senderUsername,
			ReceiverChildUsername: receiverUsername,
			Content:               masked,
			OriginalContent:       content,
			RiskType:              riskType,
		})
	}

	return filtered
}

// recordNotification writes the audit record and, if a push channel is
// configured, alerts the parent. Failures on either step are swallowed after
// logging: message delivery is independent of audit persistence.
func (p *Pipeline) recordNotification(ctx context.Context, n *models.Notification) {
	if err := p.recorder.Create(ctx, n); err != nil {
		p.logger.Error("Failed to record parent notification",
			zap.String("correlation_id", n.CorrelationID),
			zap.String("receiver", n.ReceiverChildUsername),
			zap.Error(err))
		return
	}

	p.logger.Info("Parent notification recorded",
		zap.String("correlation_id", n.CorrelationID),
		zap.String("parent", n.ParentUsername),
		zap.String("risk_type", n.RiskType))

	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyParent(ctx, n); err != nil {
		p.logger.Warn("Failed to push parent alert",
			zap.String("correlation_id", n.CorrelationID),
			zap.Error(err))
	}
}
