package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sinduaditya/gizi-gemini/models"

	"github.com/stretchr/testify/assert"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &GeminiService{
		client:  srv.Client(),
		apiKey:  "test-key",
		model:   "gemini-1.5-pro",
		baseURL: srv.URL,
	}
}

func geminiTextResponse(text string) []byte {
	out := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(out)
	return b
}

func TestParseSafetyResponse(t *testing.T) {
	res := parseSafetyResponse("Status: Aman\nAlasan: kadar gula rendah")
	assert.Equal(t, models.StatusSafe, res.Status)
	assert.Equal(t, "kadar gula rendah", res.Reason)

	// trailing spaces before the newline, as the model often emits
	res = parseSafetyResponse("Status: Tidak Aman  \nAlasan: Kandungan gula terlalu tinggi untuk penderita diabetes.")
	assert.Equal(t, models.StatusUnsafe, res.Status)
	assert.Equal(t, "Kandungan gula terlalu tinggi untuk penderita diabetes.", res.Reason)

	// surrounding chatter is tolerated as long as the two-line shape is intact
	res = parseSafetyResponse("Baik, berikut penilaiannya:\n\nStatus: Aman\nAlasan: rendah natrium.\n\nSemoga membantu.")
	assert.Equal(t, models.StatusSafe, res.Status)
	assert.Equal(t, "rendah natrium.", res.Reason)
}

func TestParseSafetyResponseMalformed(t *testing.T) {
	for _, raw := range []string{
		"Makanan ini sepertinya cukup baik untuk Anda.",
		"status: aman\nalasan: oke", // labels are case-sensitive
		"Alasan: enak\nStatus: Aman", // order-sensitive
		"",
	} {
		res := parseSafetyResponse(raw)
		assert.Equal(t, models.StatusUnknown, res.Status, "raw: %q", raw)
		assert.Equal(t, safetyFallbackReason, res.Reason)
	}
}

func TestCheckNutritionSafety(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-pro:generateContent")

		var req geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "Penyakit: Diabetes")
		assert.Contains(t, prompt, "Gula 20g per sajian")

		w.Write(geminiTextResponse("Status: Aman\nAlasan: kadar gula rendah"))
	})

	res := g.CheckNutritionSafety(context.Background(), "Gula 20g per sajian", "Penyakit: Diabetes, Gejala: -, Obat: -, Alergi: -")
	assert.Equal(t, models.StatusSafe, res.Status)
	assert.Equal(t, "kadar gula rendah", res.Reason)
}

func TestCheckNutritionSafetyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	g := &GeminiService{
		client:  &http.Client{Timeout: time.Second},
		apiKey:  "test-key",
		model:   "gemini-1.5-pro",
		baseURL: srv.URL,
	}

	res := g.CheckNutritionSafety(context.Background(), "text", "summary")
	assert.Equal(t, models.StatusError, res.Status)
	assert.NotEmpty(t, res.Reason)
}

func TestCheckNutritionSafetyAPIError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	})

	res := g.CheckNutritionSafety(context.Background(), "text", "summary")
	assert.Equal(t, models.StatusError, res.Status)
	assert.Contains(t, res.Reason, "quota exceeded")
}

func TestRecommendFoods(t *testing.T) {
	var gotPrompt string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Contents[0].Parts[0].Text
		w.Write(geminiTextResponse("Rekomendasi:\n- Oatmeal tanpa pemanis\n- Salad sayuran"))
	})

	out := g.RecommendFoods(context.Background(), models.StatusUnsafe, "gula terlalu tinggi", "Penyakit: Diabetes")
	assert.True(t, strings.HasPrefix(out, "Rekomendasi:"))
	assert.Contains(t, gotPrompt, "Status: Tidak Aman")
	assert.Contains(t, gotPrompt, "Alasan: gula terlalu tinggi")
	assert.Contains(t, gotPrompt, "Penyakit: Diabetes")
}

func TestRecommendFoodsErrorString(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	out := g.RecommendFoods(context.Background(), models.StatusUnsafe, "x", "y")
	assert.Contains(t, out, "Error saat meminta rekomendasi")
}
