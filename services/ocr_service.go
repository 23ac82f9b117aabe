package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

// OCRSpaceService extracts label text through the OCR.space parse endpoint.
// Single attempt per call; failures are reported through the ok flag with the
// error text in place of the extracted text, never as a panic or a retry.
type OCRSpaceService struct {
	client   *http.Client
	apiKey   string
	endpoint string
	tempDir  string
}

func NewOCRSpaceService() *OCRSpaceService {
	return &OCRSpaceService{
		client:   &http.Client{Timeout: 30 * time.Second},
		apiKey:   os.Getenv("OCR_SPACE_API_KEY"),
		endpoint: "https://api.ocr.space/parse/image",
		tempDir:  os.TempDir(),
	}
}

type ocrSpaceResponse struct {
	OCRExitCode   int `json:"OCRExitCode"`
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	ErrorMessage any `json:"ErrorMessage"`
}

// ExtractText uploads the image and returns the recognized text. The image is
// spooled to a scoped temp file for the multipart upload; the file is removed
// on every exit path.
func (s *OCRSpaceService) ExtractText(ctx context.Context, image []byte) (string, bool) {
	tmp, err := os.CreateTemp(s.tempDir, "label-*.jpg")
	if err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return fmt.Sprintf("Error: %v", err), false
	}
	if err := tmp.Close(); err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"apikey":            s.apiKey,
		"language":          "eng",
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         "2", // more accurate engine
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Sprintf("Error: %v", err), false
		}
	}

	f, err := os.Open(tmp.Name())
	if err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}
	part, err := w.CreateFormFile("file", "label.jpg")
	if err != nil {
		f.Close()
		return fmt.Sprintf("Error: %v", err), false
	}
	if _, err := io.Copy(part, f); err != nil {
		f.Close()
		return fmt.Sprintf("Error: %v", err), false
	}
	f.Close()
	if err := w.Close(); err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &buf)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}
	defer resp.Body.Close()

	var result ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}

	if result.OCRExitCode != 1 {
		return fmt.Sprintf("OCR Error: %v", result.ErrorMessage), false
	}

	texts := make([]string, 0, len(result.ParsedResults))
	for _, pr := range result.ParsedResults {
		texts = append(texts, pr.ParsedText)
	}
	return strings.Join(texts, " "), true
}
