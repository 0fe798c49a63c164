package service

import (
	"context"
	"errors"
	"testing"

	"curriculum-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func statuses(r domain.Report) []domain.OutcomeStatus {
	out := make([]domain.OutcomeStatus, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.Status
	}
	return out
}

func TestModuleExtractor_MergesAcrossChunks(t *testing.T) {
	model := new(MockLanguageModel)
	model.On("Invoke", mock.Anything, promptContains("Content chunk 1/2")).
		Return(`[{"name": "Networking", "summary": "basics", "content": "x", "prerequisites": ["Math"]}]`, nil).Once()
	model.On("Invoke", mock.Anything, promptContains("Content chunk 2/2")).
		Return("```json\n[{\"name\": \" networking \", \"content\": \"y\", \"prerequisites\": [\"Physics\", \" \", \"Math\"]}]\n```", nil).Once()

	extractor := NewModuleExtractor(model, zap.NewNop())
	result := extractor.Extract(context.Background(), []string{"first chunk", "second chunk"})

	require.Len(t, result.Modules, 1)
	mod := result.Modules[0]
	assert.Equal(t, "Networking", mod.Name)
	assert.Equal(t, "basics", mod.Summary)
	assert.Equal(t, "x\n\ny", mod.Content)
	assert.ElementsMatch(t, []string{"Math", "Physics"}, mod.Prerequisites)

	assert.Equal(t, []domain.OutcomeStatus{domain.OutcomeOK, domain.OutcomeOK}, statuses(result.Report))
	assert.Equal(t, 2, result.Report.Items())
	model.AssertExpectations(t)
}

func TestModuleExtractor_DropsIncompleteObjects(t *testing.T) {
	model := new(MockLanguageModel)
	model.On("Invoke", mock.Anything, mock.Anything).
		Return(`[{"name": "A"}, {"name": "B", "content": "c"}, {"content": "no name"}, {"name": "C", "content": 42}]`, nil).Once()

	result := NewModuleExtractor(model, zap.NewNop()).Extract(context.Background(), []string{"chunk"})

	require.Len(t, result.Modules, 1)
	assert.Equal(t, "B", result.Modules[0].Name)
	assert.Equal(t, []string{}, result.Modules[0].Prerequisites)
	require.Len(t, result.Report.Outcomes, 1)
	assert.Equal(t, 1, result.Report.Outcomes[0].Items)
}

func TestModuleExtractor_ContinuesPastFailures(t *testing.T) {
	model := new(MockLanguageModel)
	model.On("Invoke", mock.Anything, mock.Anything).Return("", errors.New("model unavailable")).Once()
	model.On("Invoke", mock.Anything, mock.Anything).Return("   ", nil).Once()
	model.On("Invoke", mock.Anything, mock.Anything).Return("I could not find any modules.", nil).Once()
	model.On("Invoke", mock.Anything, mock.Anything).Return(`[{"name": "Routing", "content": "paths"}]`, nil).Once()

	chunks := []string{"one", "two", "three", "four"}
	result := NewModuleExtractor(model, zap.NewNop()).Extract(context.Background(), chunks)

	require.Len(t, result.Modules, 1)
	assert.Equal(t, "Routing", result.Modules[0].Name)
	assert.Equal(t, []domain.OutcomeStatus{
		domain.OutcomeGenerationFailed,
		domain.OutcomeEmpty,
		domain.OutcomeRepairFailed,
		domain.OutcomeOK,
	}, statuses(result.Report))
	assert.Equal(t, 2, result.Report.Failed())
	assert.True(t, domain.HasCode(result.Report.Outcomes[0].Err, domain.ErrGenerationFailure))
	assert.True(t, domain.HasCode(result.Report.Outcomes[2].Err, domain.ErrRepairFailure))
	assert.Contains(t, result.Report.Outcomes[0].Reason, "model unavailable")
	model.AssertNumberOfCalls(t, "Invoke", 4)
}

func TestModuleExtractor_ValidEmptyArray(t *testing.T) {
	model := new(MockLanguageModel)
	model.On("Invoke", mock.Anything, mock.Anything).Return("[]", nil).Once()

	result := NewModuleExtractor(model, zap.NewNop()).Extract(context.Background(), []string{"chunk"})

	assert.Empty(t, result.Modules)
	assert.Equal(t, []domain.OutcomeStatus{domain.OutcomeEmpty}, statuses(result.Report))
	assert.Equal(t, 0, result.Report.Failed())
}

func TestModuleExtractor_CancelledContext(t *testing.T) {
	model := new(MockLanguageModel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewModuleExtractor(model, zap.NewNop()).Extract(ctx, []string{"a", "b"})

	assert.Empty(t, result.Modules)
	assert.Equal(t, 2, result.Report.Failed())
	model.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestModuleExtractor_NoChunks(t *testing.T) {
	model := new(MockLanguageModel)
	result := NewModuleExtractor(model, zap.NewNop()).Extract(context.Background(), nil)

	assert.Empty(t, result.Modules)
	assert.Equal(t, 0, result.Report.Total())
	model.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestBuildModulePrompt(t *testing.T) {
	prompt := buildModulePrompt("Some text about routers.", 3, 7)
	assert.Contains(t, prompt, "STRICT FORMATTING RULES")
	assert.Contains(t, prompt, "Content chunk 3/7:\nSome text about routers.")
	assert.Contains(t, prompt, "prerequisites (array of strings)")
}
