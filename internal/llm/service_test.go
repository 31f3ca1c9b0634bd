package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply    string
	err      error
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vec
	}
	return out, f.err
}

func (f fakeEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return f.vec, f.err
}

func promptText(t *testing.T, m *fakeModel) string {
	t.Helper()
	require.Len(t, m.messages, 1)
	var text string
	for _, p := range m.messages[0].Parts {
		if tp, ok := p.(llms.TextContent); ok {
			text += tp.Text
		}
	}
	return text
}

func TestGenerateBio(t *testing.T) {
	model := &fakeModel{reply: "  I build reliable Go services.  "}
	svc := New(model, nil)

	bio, err := svc.GenerateBio(context.Background(), BioInput{
		ResumeText:         "Senior Go engineer at Acme",
		IndustryPreference: "fintech",
	})
	require.NoError(t, err)
	assert.Equal(t, "I build reliable Go services.", bio)

	prompt := promptText(t, model)
	assert.Contains(t, prompt, "Senior Go engineer at Acme")
	assert.Contains(t, prompt, "Industry: fintech")
	assert.Contains(t, prompt, "Work style: not specified")
}

func TestGenerateBio_Errors(t *testing.T) {
	_, err := New(&fakeModel{err: errors.New("quota")}, nil).GenerateBio(context.Background(), BioInput{ResumeText: "x"})
	assert.ErrorContains(t, err, "quota")

	_, err = New(&fakeModel{reply: "```\n```"}, nil).GenerateBio(context.Background(), BioInput{ResumeText: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestEmbed(t *testing.T) {
	vec, err := New(nil, fakeEmbedder{vec: []float32{1, 2}}).Embed(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)

	_, err = New(nil, fakeEmbedder{}).Embed(context.Background(), "go")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestExtractDocumentText(t *testing.T) {
	model := &fakeModel{reply: "```text\nJane Doe\nGo Engineer\n```"}
	svc := New(model, nil)

	text, err := svc.ExtractDocumentText(context.Background(), "application/pdf", []byte("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo Engineer", text)

	require.Len(t, model.messages, 1)
	bin, ok := model.messages[0].Parts[0].(llms.BinaryContent)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", bin.MIMEType)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 10))
	assert.Equal(t, "hé", truncate("héllo", 2))
}
