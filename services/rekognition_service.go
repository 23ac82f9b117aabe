package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionOCR is the alternate text-extraction provider, selected with
// OCR_PROVIDER=rekognition. Same contract as OCRSpaceService.
type RekognitionOCR struct {
	client *rekognition.Client
}

func NewRekognitionOCR() (*RekognitionOCR, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionOCR{client: rekognition.NewFromConfig(cfg)}, nil
}

// ExtractText returns detected text lines joined in service order.
func (r *RekognitionOCR) ExtractText(ctx context.Context, image []byte) (string, bool) {
	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}

	var lines []string
	for _, d := range out.TextDetections {
		if d.Type == types.TextTypesLine && d.DetectedText != nil {
			lines = append(lines, *d.DetectedText)
		}
	}
	return strings.Join(lines, " "), true
}
