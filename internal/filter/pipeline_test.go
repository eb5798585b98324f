package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safechat/internal/classifier"
	"safechat/internal/models"
	"safechat/internal/policy"
)

type stubClassifier struct {
	result classifier.Result
}

func (s stubClassifier) Classify(ctx context.Context, text string) classifier.Result {
	return s.result
}

type captureRecorder struct {
	created []models.Notification
	err     error
}

func (r *captureRecorder) Create(ctx context.Context, n *models.Notification) error {
	if r.err != nil {
		return r.err
	}
	n.ParentUsername = "um_lina"
	r.created = append(r.created, *n)
	return nil
}

type captureNotifier struct {
	pushed []models.Notification
	err    error
}

func (c *captureNotifier) NotifyParent(ctx context.Context, n *models.Notification) error {
	if c.err != nil {
		return c.err
	}
	c.pushed = append(c.pushed, *n)
	return nil
}

func flaggedResult(tokens ...string) classifier.Result {
	return classifier.Result{
		Category:        classifier.CategoryInappropriateLanguage,
		RiskLevel:       1,
		OffendingTokens: tokens,
	}
}

func newTestPipeline(c MessageClassifier, birth time.Time, birthErr error, recorder NotificationRecorder, notifier ParentNotifier) *Pipeline {
	ages := NewAgeResolver(stubBirthDateStore{birth: birth, err: birthErr}, zap.NewNop())
	ages.now = func() time.Time { return date(2026, time.August, 31) }
	return NewPipeline(c, ages, policy.Default(), recorder, notifier, zap.NewNop())
}

func TestFilterMessage_SafePassesThrough(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	p := newTestPipeline(
		stubClassifier{result: classifier.Result{Category: classifier.CategorySafe}},
		date(2019, time.January, 1), nil, recorder, nil)

	got := p.FilterMessage(context.Background(), "hello friend", "omar", "lina")

	assert.Equal(t, "hello friend", got.Content)
	assert.False(t, got.IsFiltered)
	assert.Nil(t, got.RiskType)
	assert.Zero(t, got.RiskLevel)
	assert.False(t, got.ShouldNotifyParent)
	assert.Empty(t, recorder.created, "safe messages must not be recorded")
}

func TestFilterMessage_FlaggedInsideBand(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	// Receiver is 7 years old at the fixed clock.
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		date(2019, time.January, 1), nil, recorder, nil)

	got := p.FilterMessage(context.Background(), "you are a badword", "omar", "lina")

	assert.Equal(t, "you are a *******", got.Content)
	assert.True(t, got.IsFiltered)
	require.NotNil(t, got.RiskType)
	assert.Equal(t, "inappropriate_content", *got.RiskType)
	assert.Equal(t, 1, got.RiskLevel)
	assert.True(t, got.ShouldNotifyParent)

	require.Len(t, recorder.created, 1)
	rec := recorder.created[0]
	assert.Equal(t, "omar", rec.SenderChildUsername)
	assert.Equal(t, "lina", rec.ReceiverChildUsername)
	assert.Equal(t, "you are a badword", rec.OriginalContent)
	assert.Equal(t, "you are a *******", rec.Content)
	assert.Equal(t, "inappropriate_content", rec.RiskType)
	_, err := uuid.Parse(rec.CorrelationID)
	assert.NoError(t, err, "correlation id must be a valid UUID")
}

func TestFilterMessage_FlaggedOutsideBand(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	// Receiver is 15, above the inappropriate-language band.
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		date(2011, time.January, 1), nil, recorder, nil)

	got := p.FilterMessage(context.Background(), "you are a badword", "omar", "lina")

	assert.Equal(t, "you are a *******", got.Content, "masking applies even when no one is notified")
	assert.True(t, got.IsFiltered)
	assert.False(t, got.ShouldNotifyParent)
	assert.Empty(t, recorder.created)
}

func TestFilterMessage_UnknownAgeSuppressesNotification(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		time.Time{}, errors.New("connection refused"), recorder, nil)

	got := p.FilterMessage(context.Background(), "you are a badword", "omar", "lina")

	assert.Equal(t, "you are a *******", got.Content)
	assert.True(t, got.IsFiltered)
	assert.False(t, got.ShouldNotifyParent)
	assert.Empty(t, recorder.created)
}

func TestFilterMessage_RecorderFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{err: errors.New("database down")}
	notifier := &captureNotifier{}
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		date(2019, time.January, 1), nil, recorder, notifier)

	got := p.FilterMessage(context.Background(), "you are a badword", "omar", "lina")

	assert.Equal(t, "you are a *******", got.Content)
	assert.True(t, got.ShouldNotifyParent)
	assert.Empty(t, notifier.pushed, "push must not happen when the record was not written")
}

func TestFilterMessage_NotifierPushAfterRecord(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	notifier := &captureNotifier{}
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		date(2019, time.January, 1), nil, recorder, notifier)

	p.FilterMessage(context.Background(), "you are a badword", "omar", "lina")

	require.Len(t, notifier.pushed, 1)
	assert.Equal(t, "um_lina", notifier.pushed[0].ParentUsername, "push sees the parent resolved at write time")
}

func TestFilterMessage_NotifierFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	notifier := &captureNotifier{err: errors.New("telegram unreachable")}
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		date(2019, time.January, 1), nil, recorder, notifier)

	got := p.FilterMessage(context.Background(), "you are a badword", "omar", "lina")

	assert.True(t, got.ShouldNotifyParent)
	require.Len(t, recorder.created, 1)
}

func TestFilterMessage_CorrelationIDsAreUnique(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}
	p := newTestPipeline(
		stubClassifier{result: flaggedResult("badword")},
		date(2019, time.January, 1), nil, recorder, nil)

	p.FilterMessage(context.Background(), "badword one", "omar", "lina")
	p.FilterMessage(context.Background(), "badword two", "omar", "lina")

	require.Len(t, recorder.created, 2)
	assert.NotEqual(t, recorder.created[0].CorrelationID, recorder.created[1].CorrelationID)
}
