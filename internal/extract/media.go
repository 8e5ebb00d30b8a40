package extract

import (
	"context"
	"fmt"
)

func (s *Service) extractImage(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("%w: no image describer configured", ErrUnsupported)
	}
	if mimeType == "" || Classify(mimeType, "") != KindImage {
		mimeType = MimeTypeFor(filename)
	}
	return s.images.DescribeImage(ctx, data, mimeType)
}

func (s *Service) extractAudio(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	if s.audio == nil {
		return "", fmt.Errorf("%w: no transcriber configured", ErrUnsupported)
	}
	return s.audio.Transcribe(ctx, data, filename)
}
