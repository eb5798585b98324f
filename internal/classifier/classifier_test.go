package classifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safechat/internal/classifier"
	"safechat/internal/llm"
)

// fakeProvider replays a scripted sequence of replies, one per Complete call.
type fakeProvider struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("no scripted reply")
}

func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) ModelInfo() map[string]interface{} {
	return map[string]interface{}{"provider": "fake"}
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// hangingProvider blocks until the request context is cancelled.
type hangingProvider struct{}

func (hangingProvider) Complete(ctx context.Context, system, user string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingProvider) Close() error                      { return nil }
func (hangingProvider) ModelInfo() map[string]interface{} { return nil }

func newClassifier(t *testing.T, p llm.Provider) *classifier.Classifier {
	t.Helper()
	return classifier.New(p, classifier.Config{}, zap.NewNop())
}

func TestClassify_DigitReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reply    string
		want     classifier.Category
		wantRisk int
	}{
		{"safe", "0", classifier.CategorySafe, 0},
		{"inappropriate", "1", classifier.CategoryInappropriateLanguage, 1},
		{"sexual", "2", classifier.CategorySexualContent, 2},
		{"drugs", "3", classifier.CategoryDrugRelated, 3},
		{"digit embedded in prose", "التصنيف هو 2 بسبب المحتوى", classifier.CategorySexualContent, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := &fakeProvider{replies: []string{tt.reply, "word"}}
			c := newClassifier(t, provider)

			result := c.Classify(context.Background(), "some message")
			assert.Equal(t, tt.want, result.Category)
			assert.Equal(t, tt.wantRisk, result.RiskLevel)
			assert.GreaterOrEqual(t, result.RiskLevel, 0)
			assert.LessOrEqual(t, result.RiskLevel, 3)
			assert.Equal(t, result.Category == classifier.CategorySafe, result.RiskLevel == 0)
		})
	}
}

func TestClassify_SafeSkipsTokenExtraction(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{replies: []string{"0"}}
	c := newClassifier(t, provider)

	result := c.Classify(context.Background(), "hello friend")
	assert.Equal(t, classifier.CategorySafe, result.Category)
	assert.Empty(t, result.OffendingTokens)
	assert.Equal(t, 1, provider.callCount(), "safe verdicts must not trigger a second call")
}

func TestClassify_TokenExtraction(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{replies: []string{"1", "badword\n\n  idiot  \n"}}
	c := newClassifier(t, provider)

	result := c.Classify(context.Background(), "you badword idiot")
	require.Equal(t, classifier.CategoryInappropriateLanguage, result.Category)
	assert.Equal(t, []string{"badword", "idiot"}, result.OffendingTokens)
	assert.Equal(t, 2, provider.callCount())
}

func TestClassify_OutOfRangeDigitFallsBackToKeywords(t *testing.T) {
	t.Parallel()

	// First digit is 7, outside 0-3; the reply mentions drugs so the keyword
	// tables pick category 3.
	provider := &fakeProvider{replies: []string{"7 - النص يتحدث عن مخدرات", "حشيش"}}
	c := newClassifier(t, provider)

	result := c.Classify(context.Background(), "some message")
	assert.Equal(t, classifier.CategoryDrugRelated, result.Category)
	assert.Equal(t, 3, result.RiskLevel)
}

func TestClassify_KeywordFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  classifier.Category
	}{
		{"arabic safe keyword", "النص سليم تماماً", classifier.CategorySafe},
		{"arabic insult keyword", "يحتوي على شتائم", classifier.CategoryInappropriateLanguage},
		{"english sexual keyword", "this is sexual content", classifier.CategorySexualContent},
		{"safe keyword wins over later lists", "نص سليم ولا يذكر مخدرات", classifier.CategorySafe},
		{"no digit no keyword defaults safe", "lorem ipsum", classifier.CategorySafe},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := &fakeProvider{replies: []string{tt.reply, "word"}}
			c := newClassifier(t, provider)

			result := c.Classify(context.Background(), "some message")
			assert.Equal(t, tt.want, result.Category)
		})
	}
}

func TestClassify_ProviderErrorFailsOpen(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{errs: []error{errors.New("api unavailable")}}
	c := newClassifier(t, provider)

	result := c.Classify(context.Background(), "anything at all")
	assert.Equal(t, classifier.CategorySafe, result.Category)
	assert.Equal(t, 0, result.RiskLevel)
	assert.Empty(t, result.OffendingTokens)
}

func TestClassify_TokenExtractionErrorFailsOpen(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		replies: []string{"1"},
		errs:    []error{nil, errors.New("api unavailable")},
	}
	c := newClassifier(t, provider)

	result := c.Classify(context.Background(), "you badword")
	assert.Equal(t, classifier.CategorySafe, result.Category)
	assert.Equal(t, 0, result.RiskLevel)
}

func TestClassify_TimeoutFailsOpen(t *testing.T) {
	t.Parallel()

	c := classifier.New(hangingProvider{}, classifier.Config{Timeout: 20 * time.Millisecond}, zap.NewNop())

	start := time.Now()
	result := c.Classify(context.Background(), "slow classifier")
	assert.Equal(t, classifier.CategorySafe, result.Category)
	assert.Less(t, time.Since(start), 5*time.Second, "classification must return once the timeout expires")
}

func TestCategory_WireNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "safe", classifier.CategorySafe.String())
	assert.Equal(t, "inappropriate_content", classifier.CategoryInappropriateLanguage.String())
	assert.Equal(t, "sexual_content", classifier.CategorySexualContent.String())
	assert.Equal(t, "drug_related", classifier.CategoryDrugRelated.String())
}
