package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Sinduaditya/gizi-gemini/models"
)

// SafetyResult is the tagged outcome of one safety evaluation. A response
// that does not match the expected two-field shape never leaves this package
// looking like a verdict: it comes back as StatusUnknown with a fixed reason.
type SafetyResult struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

const safetyFallbackReason = "Format jawaban AI tidak dikenali."

// The model is prompted to answer in exactly this two-line shape. Matching is
// order-sensitive and case-sensitive on the literal labels.
var safetyPattern = regexp.MustCompile(`Status:[ \t]*(Aman|Tidak Aman)[ \t]*\r?\n+[ \t]*Alasan:[ \t]*([^\r\n]+)`)

type GeminiService struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   "gemini-1.5-pro",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	body, _ := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out geminiResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode gemini response error: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// CheckNutritionSafety asks the model whether the scanned food is safe for a
// user with the given health summary. Transport failure degrades to
// StatusError; an unparseable answer degrades to StatusUnknown. Neither is
// retried.
func (g *GeminiService) CheckNutritionSafety(ctx context.Context, labelText, healthSummary string) SafetyResult {
	prompt := fmt.Sprintf(`Kamu adalah ahli gizi digital. Tugasmu adalah menilai apakah suatu makanan aman untuk dikonsumsi berdasarkan data kesehatan pengguna dan informasi nilai gizinya.
Jangan langsung menilai makanan tidak aman hanya karena mengandung sedikit gula, garam, atau lemak; pertimbangkan kewajaran jumlahnya terhadap kondisi pengguna.

Data kesehatan pengguna:
%s

Informasi nilai gizi makanan:
%s

Berikan jawaban dengan format berikut:

Status: [Aman / Tidak Aman]
Alasan: [Penjelasan singkat dan non-teknis, maksimal 2 kalimat]

Sekarang, berikan penilaianmu:`, healthSummary, labelText)

	out, err := g.generate(ctx, prompt)
	if err != nil {
		return SafetyResult{Status: models.StatusError, Reason: err.Error()}
	}
	return parseSafetyResponse(out)
}

func parseSafetyResponse(raw string) SafetyResult {
	m := safetyPattern.FindStringSubmatch(raw)
	if m == nil {
		return SafetyResult{Status: models.StatusUnknown, Reason: safetyFallbackReason}
	}
	return SafetyResult{Status: m[1], Reason: strings.TrimSpace(m[2])}
}

// RecommendFoods asks for 2-3 safer alternatives given a prior verdict. The
// answer is advisory free text and is stored unparsed; on failure a generated
// error string stands in for the recommendation.
func (g *GeminiService) RecommendFoods(ctx context.Context, status, reason, healthSummary string) string {
	prompt := fmt.Sprintf(`Kamu adalah ahli gizi digital. Hasil penilaian sebelumnya untuk sebuah makanan:

Status: %s
Alasan: %s

Data kesehatan pengguna:
%s

Jika status di atas Aman, cukup tulis bahwa tidak perlu rekomendasi.
Jika tidak, berikan 2-3 rekomendasi makanan alternatif yang lebih aman dan sehat untuk pengguna, dengan format berikut:

Rekomendasi:
- [Makanan alternatif 1: alasan singkat]
- [Makanan alternatif 2: alasan singkat]
- [Makanan alternatif 3: alasan singkat] (opsional)

Sekarang, berikan hasil rekomendasimu:`, status, reason, healthSummary)

	out, err := g.generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error saat meminta rekomendasi: %v", err)
	}
	return out
}
