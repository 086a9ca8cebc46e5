package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProseAnalyzer_LoadsModelOnce(t *testing.T) {
	a := NewProseAnalyzer()
	require.NotNil(t, a.model)

	// loading the tagger and entity model alone takes a few hundred
	// milliseconds, a shared model keeps each document cheap
	start := time.Now()
	for i := 0; i < 50; i++ {
		_, err := a.Entities("Officials in Washington met the Prime Minister of Japan on Tuesday.")
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestProseAnalyzer_TokensAndSentences(t *testing.T) {
	a := NewProseAnalyzer()

	tokens, err := a.Tokens("Markets rallied today.")
	require.NoError(t, err)
	require.Equal(t, []string{"Markets", "rallied", "today", "."}, tokens)

	sentences, err := a.Sentences("Markets rallied today. Bonds fell.")
	require.NoError(t, err)
	require.Len(t, sentences, 2)
}
