package fairy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDepth(t *testing.T) {
	assert.False(t, AnalyzeDepth("안녕"))
	assert.False(t, AnalyzeDepth(strings.Repeat("a", 50)))
	assert.True(t, AnalyzeDepth(strings.Repeat("a", 51)))
	// Hangul is three bytes per syllable; a short heartfelt sentence
	// already crosses the threshold.
	assert.True(t, AnalyzeDepth("오늘 아이가 처음으로 방에서 나와서 같이 밥을 먹었어요"))
}

func TestCalcAffection(t *testing.T) {
	assert.Equal(t, 5, CalcAffection(false))
	assert.Equal(t, 15, CalcAffection(true))
}

func TestBuildSystemPrompt(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{"first meeting band", 1, "처음 만났습니다"},
		{"top of first band", 3, "처음 만났습니다"},
		{"getting acquainted band", 4, "알아가는 중입니다"},
		{"friend band", 7, "친구가 되어"},
		{"terminal level", 10, "친구가 되어"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildSystemPrompt(tt.level)
			assert.Contains(t, prompt, tt.want)
			assert.Contains(t, prompt, "요정", "persona survives every band")
		})
	}
}

func TestOpenAICompatProviderRespond(t *testing.T) {
	var captured completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "천천히 이야기해 주세요."}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAICompatProvider(srv.URL, "saedam-7b", "secret")
	resp, err := p.Respond(context.Background(), Request{
		UserMessage: "아이가 벌써 세 달째 방에서 나오지 않아요. 어떻게 해야 할지 모르겠어요.",
		Level:       2,
		History: []Message{
			{Role: "user", Content: "안녕하세요"},
			{Role: "assistant", Content: "안녕하세요, 반가워요."},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "천천히 이야기해 주세요.", resp.Message)
	assert.True(t, resp.IsDeep)
	assert.Equal(t, 15, resp.AffectionGained)

	require.Equal(t, "saedam-7b", captured.Model)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "처음 만났습니다")
	assert.Equal(t, "user", captured.Messages[3].Role)
}

func TestOpenAICompatProviderTrimsHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// system + capped history + current user message
		assert.Len(t, req.Messages, 1+historyWindow+1)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "네."}},
			},
		})
	}))
	defer srv.Close()

	history := make([]Message, 30)
	for i := range history {
		history[i] = Message{Role: "user", Content: "older"}
	}

	p := NewOpenAICompatProvider(srv.URL, "saedam-7b", "")
	_, err := p.Respond(context.Background(), Request{UserMessage: "hi", Level: 1, History: history})
	require.NoError(t, err)
}

func TestOpenAICompatProviderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOpenAICompatProvider(srv.URL, "saedam-7b", "")
	_, err := p.Respond(context.Background(), Request{UserMessage: "hi", Level: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestOpenAICompatProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	p := NewOpenAICompatProvider(srv.URL, "saedam-7b", "")
	_, err := p.Respond(context.Background(), Request{UserMessage: "hi", Level: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}
