package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

func TestCreateNoticeValidation(t *testing.T) {
	// Every rejection below fires before the repository is touched.
	now := date(2025, time.June, 1)
	svc := &noticeService{nowFn: func() time.Time { return now }}
	hallID := int64(3)

	base := func() *dto.CreateNoticeRequest {
		return &dto.CreateNoticeRequest{
			Title:   "Water supply maintenance",
			Content: "Water will be off on Friday morning.",
		}
	}

	t.Run("title length", func(t *testing.T) {
		mutations := map[string]func(r *dto.CreateNoticeRequest){
			"empty title":     func(r *dto.CreateNoticeRequest) { r.Title = "" },
			"too short":       func(r *dto.CreateNoticeRequest) { r.Title = "ab" },
			"whitespace only": func(r *dto.CreateNoticeRequest) { r.Title = "   " },
			"too long":        func(r *dto.CreateNoticeRequest) { r.Title = strings.Repeat("x", 151) },
		}
		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				req := base()
				mutate(req)

				_, err := svc.CreateNotice(context.Background(), 1, &hallID, req)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			})
		}
	})

	t.Run("unknown visibility", func(t *testing.T) {
		req := base()
		req.Visibility = "hidden"

		_, err := svc.CreateNotice(context.Background(), 1, &hallID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("private notice requires a hall", func(t *testing.T) {
		req := base()
		req.Visibility = "private"

		_, err := svc.CreateNotice(context.Background(), 1, nil, req)
		assert.ErrorIs(t, err, apperrors.ErrHallScopeMissing)
	})

	t.Run("expiry date", func(t *testing.T) {
		t.Run("malformed", func(t *testing.T) {
			req := base()
			bad := "tomorrow"
			req.ExpiryDate = &bad

			_, err := svc.CreateNotice(context.Background(), 1, &hallID, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})

		t.Run("in the past", func(t *testing.T) {
			req := base()
			past := now.Add(-time.Hour).Format(time.RFC3339)
			req.ExpiryDate = &past

			_, err := svc.CreateNotice(context.Background(), 1, &hallID, req)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	})
}
