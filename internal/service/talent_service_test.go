package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
)

func TestTalentService_ListTalent(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("ListWithUsers", mock.Anything, defaultTalentLimit).Return([]model.TalentProfile{
		{Bio: "one"},
		{Bio: ""},
		{Bio: "three"},
	}, nil)

	got, err := NewTalentService(repo, new(MockAIService)).ListTalent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Bio)
	assert.Equal(t, "three", got[1].Bio)
}

func TestTalentService_Search(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("ListEmbedded", mock.Anything).Return([]model.TalentProfile{
		{Bio: "far", Embedding: []float32{0, 1}},
		{Bio: "near", Embedding: []float32{1, 0.1}},
		{Bio: "wrong dims", Embedding: []float32{1, 0, 0}},
	}, nil)

	ai := new(MockAIService)
	ai.On("Embed", mock.Anything, "golang").Return([]float32{1, 0}, nil)

	matches, err := NewTalentService(repo, ai).Search(context.Background(), " golang ", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "near", matches[0].Profile.Bio)
	assert.Equal(t, "far", matches[1].Profile.Bio)
	assert.Greater(t, matches[0].Score, matches[1].Score)

	_, err = NewTalentService(repo, ai).Search(context.Background(), "", 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
