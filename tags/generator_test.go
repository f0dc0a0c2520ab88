package tags

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestFallbackTagsAlwaysReturnsThree(t *testing.T) {
	for _, text := range []string{
		"",
		"nothing relevant here",
		"coffee at sunrise thinking about my goals and my relationship",
	} {
		tags := FallbackTags(text)
		if len(tags) != 3 {
			t.Errorf("FallbackTags(%q) returned %d tags, want 3", text, len(tags))
		}
		seen := map[string]bool{}
		for _, tag := range tags {
			if seen[tag] {
				t.Errorf("FallbackTags(%q) returned duplicate tag %q", text, tag)
			}
			seen[tag] = true
		}
	}
}

func TestFallbackTagsMatchesCategoriesInOrder(t *testing.T) {
	got := FallbackTags("Every MORNING I need motivation to chase a secret goal")
	want := []string{"morning", "motivation", "confession"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FallbackTags = %v, want %v", got, want)
	}
}

func TestFallbackTagsTopsUpFromGenericPool(t *testing.T) {
	got := FallbackTags("wisdom from experience")
	want := []string{"wisdom", "reflection", "thoughts"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FallbackTags = %v, want %v", got, want)
	}
}

func TestFallbackTagsNoMatchIsGeneric(t *testing.T) {
	got := FallbackTags("completely unrelated words")
	want := []string{"reflection", "thoughts", "voice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FallbackTags = %v, want %v", got, want)
	}
}

func TestGenerateWithoutKeyUsesFallback(t *testing.T) {
	for _, key := range []string{"", "your_openai_api_key_here"} {
		g := NewGenerator(key, "https://api.openai.com/v1", testLogger())
		got := g.Generate(context.Background(), "story about that one morning")
		if len(got) != 3 {
			t.Errorf("key=%q: got %d tags, want 3", key, len(got))
		}
		if got[0] != "morning" {
			t.Errorf("key=%q: expected keyword match first, got %v", key, got)
		}
	}
}

func TestGenerateParsesRemoteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"#Philosophy, Deepthoughts , wisdom, extra"}}]}`))
	}))
	defer srv.Close()

	g := NewGenerator("sk-test", srv.URL, testLogger())
	got := g.Generate(context.Background(), "thinking out loud")
	want := []string{"philosophy", "deepthoughts", "wisdom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateFallsBackOnRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGenerator("sk-test", srv.URL, testLogger())
	got := g.Generate(context.Background(), "peaceful meditation this morning")
	want := []string{"morning", "mindfulness", "reflection"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateFallsBackOnTooFewRemoteTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"onlyone, onlyone"}}]}`))
	}))
	defer srv.Close()

	g := NewGenerator("sk-test", srv.URL, testLogger())
	got := g.Generate(context.Background(), "no keywords at all")
	want := []string{"reflection", "thoughts", "voice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}
